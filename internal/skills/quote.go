// Package skills provides the builtin capability providers: quote fetchers
// and page readers. Each one is transport only, returning the upstream
// payload untouched for downstream collaborators to interpret.
package skills

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dcoale/skilld/internal/skill"
)

const (
	sinaQuoteURL    = "https://hq.sinajs.cn/list=%s"
	tencentQuoteURL = "https://qt.gtimg.cn/q=%s"

	sinaReferer = "https://finance.sina.com.cn"

	// The quote hosts reject requests without a browser-like agent.
	browserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// exchangePrefix maps an A-share symbol to its exchange prefix: Shanghai
// listings start with 6, everything else is Shenzhen.
func exchangePrefix(symbol string) string {
	if strings.HasPrefix(symbol, "6") {
		return "sh"
	}
	return "sz"
}

// Quote fetches a raw quote payload for the "symbol" parameter from an
// upstream quote host.
type Quote struct {
	client  *http.Client
	urlFmt  string
	source  string
	referer string
}

// NewQuote creates a quote skill against an arbitrary endpoint. urlFmt must
// contain one %s verb for the prefixed symbol.
func NewQuote(source, urlFmt, referer string, client *http.Client) *Quote {
	return &Quote{
		client:  client,
		urlFmt:  urlFmt,
		source:  source,
		referer: referer,
	}
}

// NewSinaQuote creates the Sina Finance quote skill.
func NewSinaQuote(client *http.Client) *Quote {
	return NewQuote("sina", sinaQuoteURL, sinaReferer, client)
}

// NewTencentQuote creates the Tencent Finance quote skill.
func NewTencentQuote(client *http.Client) *Quote {
	return NewQuote("tencent", tencentQuoteURL, "", client)
}

// Invoke fetches the quote payload. Params: "symbol" (required).
func (q *Quote) Invoke(ctx context.Context, params skill.Params) (any, error) {
	symbol, ok := params["symbol"].(string)
	if !ok || symbol == "" {
		return nil, fmt.Errorf("missing required parameter %q", "symbol")
	}

	url := fmt.Sprintf(q.urlFmt, exchangePrefix(symbol)+symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("User-Agent", browserAgent)
	if q.referer != "" {
		req.Header.Set("Referer", q.referer)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("quote host returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read quote payload: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty payload for symbol %s", symbol)
	}

	return map[string]any{
		"symbol": symbol,
		"source": q.source,
		"raw":    string(body),
	}, nil
}
