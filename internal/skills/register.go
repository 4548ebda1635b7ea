package skills

import (
	"net/http"

	"github.com/dcoale/skilld/internal/dispatch"
	"github.com/dcoale/skilld/internal/model"
	"github.com/dcoale/skilld/internal/skill"
)

// Builtin skill names.
const (
	NameSinaQuote    = "sina_quote"
	NameTencentQuote = "tencent_quote"
	NameWebFetch     = "web_fetch"
	NameJinaReader   = "jina_reader"
)

// Composite task names exposed at the HTTP boundary.
const (
	TaskStockPrice = "get_stock_price"
	TaskWebContent = "get_web_content"
)

// RegisterBuiltins registers the builtin providers and their composite
// routes: quotes prefer Sina with Tencent as backup, pages prefer a direct
// fetch with the reader front as backup.
func RegisterBuiltins(reg *skill.Registry, sched *dispatch.Scheduler, client *http.Client) {
	reg.Register(NameSinaQuote, NewSinaQuote(client), 1, model.DataStockPrice)
	reg.Register(NameTencentQuote, NewTencentQuote(client), 1, model.DataStockPrice)
	reg.Register(NameWebFetch, NewPageFetch(client), 3, model.DataWebPage)
	reg.Register(NameJinaReader, NewJinaReader(client), 3, model.DataWebPage)

	sched.RegisterRoute(TaskStockPrice, NameSinaQuote, NameTencentQuote)
	sched.RegisterRoute(TaskWebContent, NameWebFetch, NameJinaReader)
}
