package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/ganan"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const cur = "USD"

func usd(v float64) string { return ganan.M(v, cur).String() }

// dinner returns a ledger with A, B and C where A paid 90 for everyone.
func dinner(t *testing.T) *ganan.Ledger {
	t.Helper()
	l := ganan.NewLedger()
	for _, name := range []string{"A", "B", "C"} {
		if err := l.AddParticipant(name); err != nil {
			t.Fatalf("AddParticipant(%q) failed: %v", name, err)
		}
	}
	if err := l.AddExpense("A", ganan.D(90), []string{"A", "B", "C"}, "Dinner"); err != nil {
		t.Fatalf("AddExpense() failed: %v", err)
	}
	return l
}

// parse parses markdown with the table extension.
func parse(md string) (ast.Node, []byte) {
	src := []byte(md)
	p := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	return p.Parse(text.NewReader(src)), src
}

// nodeText concatenates the text found under n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// tableRows returns the text of every cell of every table row, header included.
func tableRows(md string) [][]string {
	root, src := parse(md)
	var rows [][]string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *extast.TableHeader, *extast.TableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, nodeText(c, src))
			}
			rows = append(rows, row)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return rows
}

// listItems returns the text of every list item.
func listItems(md string) []string {
	root, src := parse(md)
	var items []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if _, ok := n.(*ast.ListItem); ok && entering {
			items = append(items, nodeText(n, src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return items
}

// headings returns the text of every heading, prefixed by its level.
func headings(md string) []string {
	root, src := parse(md)
	var titles []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			titles = append(titles, strings.Repeat("#", h.Level)+" "+nodeText(n, src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return titles
}

func TestParticipants(t *testing.T) {
	if got := listItems(Participants([]string{"A", "B"})); !cmp.Equal(got, []string{"A", "B"}) {
		t.Errorf("Participants() items = %v, want [A B]", got)
	}
	if got := Participants(nil); !strings.Contains(got, "No people added yet") {
		t.Errorf("Participants(nil) = %q, want the empty message", got)
	}
}

func TestExpenses(t *testing.T) {
	l := dinner(t)
	if err := l.AddExpense("B", ganan.D(12), []string{"C"}, ""); err != nil {
		t.Fatal(err)
	}

	want := [][]string{
		{"#", "Payer", "Amount", "Description", "Beneficiaries"},
		{"0", "A", usd(90), "Dinner", "A, B, C"},
		{"1", "B", usd(12), ganan.NoDescription, "C"},
	}
	if diff := cmp.Diff(want, tableRows(Expenses(l, cur))); diff != "" {
		t.Errorf("Expenses() mismatch (-want +got):\n%s", diff)
	}

	if err := l.BeginEdit(1); err != nil {
		t.Fatal(err)
	}
	rows := tableRows(Expenses(l, cur))
	if got := rows[2][0]; got != "1 (editing)" {
		t.Errorf("edited row index = %q, want %q", got, "1 (editing)")
	}

	if got := Expenses(ganan.NewLedger(), cur); !strings.Contains(got, "No expenses yet") {
		t.Errorf("Expenses(empty) = %q, want the empty message", got)
	}
}

func TestBalances(t *testing.T) {
	l := dinner(t)
	if err := l.AddParticipant("D"); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"A owed " + usd(60),
		"B owes " + usd(30),
		"C owes " + usd(30),
	}
	if diff := cmp.Diff(want, listItems(Balances(l.CalculateBalances(), cur))); diff != "" {
		t.Errorf("Balances() mismatch (-want +got):\n%s", diff)
	}

	if got := Balances(ganan.NewLedger().CalculateBalances(), cur); !strings.Contains(got, "No balances yet") {
		t.Errorf("Balances(empty) = %q, want the empty message", got)
	}
}

func TestSettlements(t *testing.T) {
	testCases := []struct {
		name        string
		settlements []ganan.Settlement
		want        []string
		wantMessage string
	}{
		{
			name: "payments",
			settlements: []ganan.Settlement{
				{From: "B", To: "A", Amount: ganan.D(30)},
				{From: "C", To: "A", Amount: ganan.D(30)},
			},
			want: []string{"B pays A: " + usd(30), "C pays A: " + usd(30)},
		},
		{
			name:        "settled",
			settlements: nil,
			wantMessage: "No settlements needed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			md := Settlements(tc.settlements, cur)
			if diff := cmp.Diff(tc.want, listItems(md)); diff != "" {
				t.Errorf("Settlements() mismatch (-want +got):\n%s", diff)
			}
			if tc.wantMessage != "" && !strings.Contains(md, tc.wantMessage) {
				t.Errorf("Settlements() = %q, want message %q", md, tc.wantMessage)
			}
		})
	}

	if got := MissingCollector(); !strings.Contains(got, "Please select a collector person") {
		t.Errorf("MissingCollector() = %q", got)
	}
}

func TestReport(t *testing.T) {
	l := dinner(t)

	md := Report(l, cur)
	want := []string{
		"# Settlements (Optimized)",
		"## People",
		"## Expenses",
		"## Balances",
		"## Who pays whom",
	}
	if diff := cmp.Diff(want, headings(md)); diff != "" {
		t.Errorf("Report() headings mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(md, "**B** pays **A**") {
		t.Errorf("Report() is missing the settlements:\n%s", md)
	}

	l.SetMode(ganan.Collector)
	l.SetCollector("")
	md = Report(l, cur)
	if got := headings(md)[0]; got != "# Settlements (Simple Collection)" {
		t.Errorf("Report() title = %q", got)
	}
	if !strings.Contains(md, "Please select a collector person") {
		t.Errorf("Report() without collector:\n%s", md)
	}

	l.SetCollector("B")
	md = Report(l, cur)
	if !strings.Contains(md, "Collected by **B**") || !strings.Contains(md, "**B** pays **A**") {
		t.Errorf("Report() with collector B:\n%s", md)
	}
}

func TestEscape(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"Bob", "Bob"},
		{"a|b", `a\|b`},
		{"*star*", `\*star\*`},
		{"snake_case", `snake\_case`},
		{"two\nlines", "two lines"},
	}
	for _, tc := range testCases {
		if got := escape(tc.in); got != tc.want {
			t.Errorf("escape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewLedgerReport(t *testing.T) {
	l := dinner(t)
	l.SetMode(ganan.Collector)

	r := NewLedgerReport(l, cur)
	if r.Mode != "Simple Collection" || r.Collector != "A" {
		t.Errorf("NewLedgerReport() mode = %q, collector = %q", r.Mode, r.Collector)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, r.Participants); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}
	if len(r.Expenses.Rows) != 1 || len(r.Balances.Rows) != 3 {
		t.Errorf("NewLedgerReport() has %d expenses and %d balances", len(r.Expenses.Rows), len(r.Balances.Rows))
	}
	want := []SettlementRow{
		{From: "B", To: "A", Amount: usd(30)},
		{From: "C", To: "A", Amount: usd(30)},
	}
	if diff := cmp.Diff(want, r.Settlements.Rows); diff != "" {
		t.Errorf("settlements mismatch (-want +got):\n%s", diff)
	}
}
