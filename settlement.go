package ganan

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Settlement is a payment to be made from one participant to another.
type Settlement struct {
	From   string
	To     string
	Amount decimal.Decimal
}

func (s Settlement) String() string { return fmt.Sprintf("%s pays %s %s", s.From, s.To, s.Amount.StringFixed(2)) }

// party is a debtor or a creditor, with the magnitude still to settle.
type party struct {
	name   string
	amount decimal.Decimal
}

// CalculateSettlements computes the settlements according to the ledger's mode.
//
// In Collector mode without a collector it returns ErrNoCollector: an empty
// list would mean that everybody is already settled.
func (l *Ledger) CalculateSettlements() ([]Settlement, error) {
	switch l.mode {
	case Collector:
		return l.CollectorSettlements(l.collector)
	default:
		return l.OptimizedSettlements(), nil
	}
}

// OptimizedSettlements matches debtors with creditors.
//
// Debtors and creditors are sorted by increasing amount. The smallest debtor
// pays the smallest creditor as much as possible, then whichever is within
// Tolerance of zero is removed, until one list is exhausted. This is not
// guaranteed to be the smallest number of payments, but it is deterministic.
//
// Balances within Tolerance are left out from the start, so a debt only
// owed to such balances is not paid.
func (l *Ledger) OptimizedSettlements() []Settlement {
	balances := l.CalculateBalances()

	var debtors, creditors []party
	for name, v := range balances.All() {
		switch {
		case v.LessThan(Tolerance.Neg()):
			debtors = append(debtors, party{name: name, amount: v.Abs()})
		case v.GreaterThan(Tolerance):
			creditors = append(creditors, party{name: name, amount: v})
		}
	}

	byAmount := func(a, b party) int { return a.amount.Cmp(b.amount) }
	slices.SortStableFunc(debtors, byAmount)
	slices.SortStableFunc(creditors, byAmount)

	settlements := make([]Settlement, 0)
	d, c := 0, 0
	for d < len(debtors) && c < len(creditors) {
		debtor, creditor := &debtors[d], &creditors[c]

		amount := decimal.Min(debtor.amount, creditor.amount)
		settlements = append(settlements, Settlement{From: debtor.name, To: creditor.name, Amount: amount})

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		// a party still listed always has more than Tolerance left.
		if settled(debtor.amount) {
			d++
		}
		if settled(creditor.amount) {
			c++
		}
	}
	return settlements
}

// CollectorSettlements routes every payment through collector: debtors pay
// the collector, and the collector pays creditors.
//
// It returns ErrNoCollector if collector is empty.
func (l *Ledger) CollectorSettlements(collector string) ([]Settlement, error) {
	if collector == "" {
		return nil, ErrNoCollector
	}
	balances := l.CalculateBalances()

	settlements := make([]Settlement, 0)
	for name, v := range balances.All() {
		if name == collector {
			continue
		}
		switch {
		case v.LessThan(Tolerance.Neg()):
			settlements = append(settlements, Settlement{From: name, To: collector, Amount: v.Abs()})
		case v.GreaterThan(Tolerance):
			settlements = append(settlements, Settlement{From: collector, To: name, Amount: v})
		}
	}
	return settlements, nil
}
