package model

import "time"

// Result origin constants.
const (
	OriginCache = "cache"
	OriginLive  = "live"
)

// Data-type classifications. A skill carries exactly one of these labels;
// the label selects both the cache TTL and the execution timeout policy,
// each table falling back to its own default for labels it does not list.
const (
	DataStockPrice          = "stock_price"
	DataStockInfo           = "stock_info"
	DataWebPage             = "web_page"
	DataNews                = "news"
	DataSearchResult        = "search_result"
	DataAnalysisReport      = "analysis_report"
	DataTechnicalIndicators = "technical_indicators"
	DataLocal               = "local"
	DataFile                = "file"
	DataWebFetch            = "web_fetch"
	DataWebSearch           = "web_search"
	DataBrowser             = "browser"
	DataAI                  = "ai"
)

// Result is the outcome of a single dispatch attempt. It is always returned
// by value and never persisted; failures are carried in Error rather than
// raised, so nothing in the dispatch path can take down the caller.
type Result struct {
	Success    bool   `json:"success"`
	Skill      string `json:"skill,omitempty"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	Origin     string `json:"origin,omitempty"`
	Cost       int    `json:"cost"`
	DurationMS int    `json:"duration_ms"`
}

// Invocation is one recorded dispatch attempt, written to the history store
// after the attempt resolves. The in-memory stats counters are the source of
// truth for aggregate numbers; these rows exist for operator inspection.
type Invocation struct {
	ID          string    `json:"id"`
	Skill       string    `json:"skill"`
	Fingerprint string    `json:"fingerprint"`
	DataType    string    `json:"data_type"`
	Origin      string    `json:"origin,omitempty"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Cost        int       `json:"cost"`
	DurationMS  int       `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// Elapsed returns the invocation duration as a time.Duration.
func (i *Invocation) Elapsed() time.Duration {
	return time.Duration(i.DurationMS) * time.Millisecond
}
