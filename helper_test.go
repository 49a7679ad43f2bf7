package ganan

import "testing"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// newGroup returns a ledger with the given participants.
func newGroup(t *testing.T, names ...string) *Ledger {
	t.Helper()
	l := NewLedger()
	for _, name := range names {
		if err := l.AddParticipant(name); err != nil {
			t.Fatalf("AddParticipant(%q) failed: %v", name, err)
		}
	}
	return l
}

// spend records an expense or fails the test.
func spend(t *testing.T, l *Ledger, payer string, amount float64, beneficiaries ...string) {
	t.Helper()
	if err := l.AddExpense(payer, D(amount), beneficiaries, ""); err != nil {
		t.Fatalf("AddExpense(%q, %v, %v) failed: %v", payer, amount, beneficiaries, err)
	}
}

// dinner is the ledger where A paid 90 for A, B and C.
func dinner(t *testing.T) *Ledger {
	t.Helper()
	l := newGroup(t, "A", "B", "C")
	spend(t, l, "A", 90, "A", "B", "C")
	return l
}

// failingStore is a Store that fails every call.
type failingStore struct{ err error }

func (s failingStore) Get(string) ([]byte, bool, error) { return nil, false, s.err }
func (s failingStore) Set(string, []byte) error         { return s.err }
func (s failingStore) Delete(string) error              { return s.err }
