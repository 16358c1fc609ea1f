// Package renderer turns market and portfolio views into markdown.
package renderer

import (
	"embed"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/etnz/papertrade"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"change": change,
}

var tmpl = template.Must(template.New("").Funcs(funcs).ParseFS(templates, "templates/*.md"))

// change renders a price change as an absolute amount with an arrow.
func change(m papertrade.Money) string {
	if m.IsNegative() {
		return m.Abs().String() + " ▼"
	}
	return m.String() + " ▲"
}

// Market renders the market quotes.
func Market(quotes []papertrade.Quote) string {
	return renderTemplate("market.md", quotes)
}

// Portfolio renders the positions and the financial summary of a valuation.
func Portfolio(v *papertrade.Valuation) string {
	return renderTemplate("portfolio.md", v)
}

// Transactions renders the transaction log, most recent first.
func Transactions(txs []papertrade.Transaction) string {
	recent := slices.Clone(txs)
	slices.Reverse(recent)
	return renderTemplate("transactions.md", recent)
}

// SummaryData is the one-line status shown above the menu.
type SummaryData struct {
	Cash       papertrade.Money
	TotalValue papertrade.Money
	Unsaved    bool
}

// Summary renders the one-line portfolio status.
func Summary(s SummaryData) string {
	return renderTemplate("summary.md", s)
}

// renderTemplate executes one of the embedded templates.
func renderTemplate(name string, data any) string {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
