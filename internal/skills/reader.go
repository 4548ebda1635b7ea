package skills

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dcoale/skilld/internal/skill"
)

const jinaReaderBase = "https://r.jina.ai/"

// PageFetch retrieves a page with a plain GET. Params: "url" (required).
type PageFetch struct {
	client *http.Client
}

// NewPageFetch creates the direct page fetch skill.
func NewPageFetch(client *http.Client) *PageFetch {
	return &PageFetch{client: client}
}

// Invoke fetches the page body.
func (p *PageFetch) Invoke(ctx context.Context, params skill.Params) (any, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return nil, fmt.Errorf("missing required parameter %q", "url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("User-Agent", browserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page body: %w", err)
	}

	return map[string]any{
		"url":     url,
		"content": string(body),
	}, nil
}

// JinaReader fetches a page through the r.jina.ai reader front, which
// returns LLM-friendly Markdown and succeeds on pages that block direct
// requests. Params: "url" (required), "cookie" (optional, forwarded for
// pages behind a login).
type JinaReader struct {
	client *http.Client
	base   string
}

// NewJinaReader creates the Jina Reader skill.
func NewJinaReader(client *http.Client) *JinaReader {
	return &JinaReader{client: client, base: jinaReaderBase}
}

// NewJinaReaderWithBase creates a reader against an alternate front,
// primarily for tests.
func NewJinaReaderWithBase(base string, client *http.Client) *JinaReader {
	return &JinaReader{client: client, base: base}
}

// Invoke fetches the page through the reader front.
func (j *JinaReader) Invoke(ctx context.Context, params skill.Params) (any, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return nil, fmt.Errorf("missing required parameter %q", "url")
	}

	// The reader front addresses targets as <base>http://<host-and-path>.
	stripped := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	readerURL := j.base + "http://" + stripped

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build reader request: %w", err)
	}
	req.Header.Set("User-Agent", browserAgent)
	if cookie, ok := params["cookie"].(string); ok && cookie != "" {
		req.Header.Set("x-with-cookie", cookie)
	}

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch via reader: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("reader returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read reader body: %w", err)
	}

	return map[string]any{
		"url":     url,
		"content": string(body),
		"source":  "jina_reader",
	}, nil
}
