// Package renderer turns ledger views into markdown.
package renderer

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/ganan"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates = must(fs.Sub(templatesFS, "templates"))

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Participants renders the roster as a bullet list.
func Participants(names []string) string {
	return renderTemplate("participants", "participants.md", nil, escapeAll(names))
}

// Expenses renders the ledger's expenses as a table.
func Expenses(l *ganan.Ledger, cur string) string {
	return renderTemplate("expenses", "expenses.md", nil, NewExpenseList(l, cur))
}

// Balances renders the unsettled balances, the most owed first.
func Balances(b *ganan.Balances, cur string) string {
	return renderTemplate("balances", "balances.md", nil, NewBalanceList(b, cur))
}

// Settlements renders the list of payments to make.
func Settlements(s []ganan.Settlement, cur string) string {
	return renderTemplate("settlements", "settlements.md", nil, NewSettlementList(s, cur))
}

// MissingCollector renders the message displayed when collector settlements
// cannot be computed.
func MissingCollector() string {
	return renderTemplate("settlements", "settlements.md", nil, &SettlementList{MissingCollector: true})
}

// Report renders the whole ledger: participants, expenses, balances and settlements.
func Report(l *ganan.Ledger, cur string) string {
	partials := map[string]string{
		"participants": "participants.md",
		"expenses":     "expenses.md",
		"balances":     "balances.md",
		"settlements":  "settlements.md",
	}
	return renderTemplate("report", "report.md", partials, NewLedgerReport(l, cur))
}

// NewLedgerReport computes the report of a ledger.
func NewLedgerReport(l *ganan.Ledger, cur string) *LedgerReport {
	r := &LedgerReport{
		Mode:         l.Mode().Title(),
		Participants: escapeAll(l.Participants()),
		Expenses:     NewExpenseList(l, cur),
		Balances:     NewBalanceList(l.CalculateBalances(), cur),
	}
	if l.Mode() == ganan.Collector {
		r.Collector = escape(l.Collector())
	}
	settlements, err := l.CalculateSettlements()
	if errors.Is(err, ganan.ErrNoCollector) {
		r.Settlements = &SettlementList{MissingCollector: true}
	} else {
		r.Settlements = NewSettlementList(settlements, cur)
	}
	return r
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	"\n", " ",
)

// escape makes a user provided text safe to print inside markdown.
func escape(s string) string { return markdownEscaper.Replace(s) }

func escapeAll(names []string) []string {
	escaped := make([]string, len(names))
	for i, name := range names {
		escaped[i] = escape(name)
	}
	return escaped
}
