package renderer

import (
	"strings"

	"github.com/etnz/ganan"
)

// LedgerReport is the view of a whole ledger.
type LedgerReport struct {
	Mode         string
	Collector    string // only set in collector mode
	Participants []string
	Expenses     *ExpenseList
	Balances     *BalanceList
	Settlements  *SettlementList
}

// ExpenseRow is one expense, ready to print.
type ExpenseRow struct {
	Index         int
	Payer         string
	Amount        string
	Description   string
	Beneficiaries string
	Editing       bool
}

// ExpenseList is the view of all expenses.
type ExpenseList struct {
	Rows []ExpenseRow
}

// NewExpenseList creates the view of the ledger's expenses.
func NewExpenseList(l *ganan.Ledger, cur string) *ExpenseList {
	editing, isEditing := l.Editing()
	list := &ExpenseList{}
	for i, e := range l.Expenses() {
		list.Rows = append(list.Rows, ExpenseRow{
			Index:         i,
			Payer:         escape(e.Payer),
			Amount:        ganan.M(e.Amount, cur).String(),
			Description:   escape(e.Description),
			Beneficiaries: strings.Join(escapeAll(e.Beneficiaries), ", "),
			Editing:       isEditing && editing == i,
		})
	}
	return list
}

// BalanceRow is one participant's balance.
type BalanceRow struct {
	Name     string
	Status   string // "owed" or "owes"
	Amount   string // always positive
	Positive bool
}

// BalanceList is the view of the unsettled balances.
type BalanceList struct {
	Rows []BalanceRow
}

// NewBalanceList creates the view of the balances, the most owed first.
// Settled participants are skipped.
func NewBalanceList(b *ganan.Balances, cur string) *BalanceList {
	list := &BalanceList{}
	for _, entry := range b.Sorted() {
		row := BalanceRow{
			Name:     escape(entry.Name),
			Amount:   ganan.M(entry.Balance.Abs(), cur).String(),
			Positive: entry.Balance.IsPositive(),
		}
		if row.Positive {
			row.Status = "owed"
		} else {
			row.Status = "owes"
		}
		list.Rows = append(list.Rows, row)
	}
	return list
}

// SettlementRow is one payment to make.
type SettlementRow struct {
	From   string
	To     string
	Amount string
}

// SettlementList is the view of the payments to make.
type SettlementList struct {
	// MissingCollector is true when collector settlements were requested
	// without a collector.
	MissingCollector bool
	Rows             []SettlementRow
}

// NewSettlementList creates the view of a list of settlements.
func NewSettlementList(settlements []ganan.Settlement, cur string) *SettlementList {
	list := &SettlementList{}
	for _, s := range settlements {
		list.Rows = append(list.Rows, SettlementRow{
			From:   escape(s.From),
			To:     escape(s.To),
			Amount: ganan.M(s.Amount, cur).String(),
		})
	}
	return list
}
