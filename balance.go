package ganan

import (
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Balances maps every participant to the money they are owed (positive) or
// they owe (negative).
//
// Balances remember the order in which participants were first met: roster
// order first, then names only referenced by expenses.
type Balances struct {
	names  []string
	values map[string]decimal.Decimal
}

func newBalances() *Balances {
	return &Balances{values: make(map[string]decimal.Decimal)}
}

// add v to the balance of name, creating the entry if needed.
func (b *Balances) add(name string, v decimal.Decimal) {
	old, exists := b.values[name]
	if !exists {
		b.names = append(b.names, name)
	}
	b.values[name] = old.Add(v)
}

// CalculateBalances computes the balance of every participant.
//
// Every participant starts at zero, each expense credits its payer with the
// full amount and debits each beneficiary with an equal share. Names
// referenced by expenses but absent from the roster get an entry too.
func (l *Ledger) CalculateBalances() *Balances {
	b := newBalances()
	for _, p := range l.participants {
		b.add(p, decimal.Zero)
	}
	for _, e := range l.expenses {
		b.add(e.Payer, e.Amount)
		share := e.Share()
		for _, beneficiary := range e.Beneficiaries {
			b.add(beneficiary, share.Neg())
		}
	}
	return b
}

// Get returns the balance of name, zero if unknown.
func (b *Balances) Get(name string) decimal.Decimal { return b.values[name] }

// Has returns true if name has a balance entry.
func (b *Balances) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Len returns the number of entries.
func (b *Balances) Len() int { return len(b.names) }

// Names returns the participants in balance order.
func (b *Balances) Names() []string { return slices.Clone(b.names) }

// All iterates over the balances in order.
func (b *Balances) All() iter.Seq2[string, decimal.Decimal] {
	return func(yield func(string, decimal.Decimal) bool) {
		for _, name := range b.names {
			if !yield(name, b.values[name]) {
				return
			}
		}
	}
}

// Map returns a copy of the balances as a map.
func (b *Balances) Map() map[string]decimal.Decimal { return maps.Clone(b.values) }

// Sum returns the sum of all balances, it is always zero within Tolerance.
func (b *Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b.values {
		sum = sum.Add(v)
	}
	return sum
}

// Settled returns true if every balance is within Tolerance of zero.
func (b *Balances) Settled() bool {
	for _, v := range b.values {
		if !settled(v) {
			return false
		}
	}
	return true
}

// Apply returns a copy of the balances after every payment in settlements
// has been made: the payer's balance goes up, the receiver's goes down.
func (b *Balances) Apply(settlements []Settlement) *Balances {
	c := &Balances{names: slices.Clone(b.names), values: maps.Clone(b.values)}
	for _, s := range settlements {
		c.add(s.From, s.Amount)
		c.add(s.To, s.Amount.Neg())
	}
	return c
}

// Entry is one participant's balance.
type Entry struct {
	Name    string
	Balance decimal.Decimal
}

// Sorted returns the unsettled balances by decreasing value, the most owed
// first. Ties keep the balance order.
func (b *Balances) Sorted() []Entry {
	entries := make([]Entry, 0, len(b.names))
	for name, v := range b.All() {
		if settled(v) {
			continue
		}
		entries = append(entries, Entry{Name: name, Balance: v})
	}
	slices.SortStableFunc(entries, func(x, y Entry) int { return y.Balance.Cmp(x.Balance) })
	return entries
}
