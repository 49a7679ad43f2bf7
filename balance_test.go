package ganan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLedger_CalculateBalances(t *testing.T) {
	testCases := []struct {
		name     string
		ledger   func(t *testing.T) *Ledger
		want     map[string]float64
		wantKeys []string
	}{
		{
			name:     "empty ledger",
			ledger:   func(t *testing.T) *Ledger { return NewLedger() },
			want:     map[string]float64{},
			wantKeys: nil,
		},
		{
			name:     "participants without expenses",
			ledger:   func(t *testing.T) *Ledger { return newGroup(t, "A", "B") },
			want:     map[string]float64{"A": 0, "B": 0},
			wantKeys: []string{"A", "B"},
		},
		{
			name:     "dinner",
			ledger:   dinner,
			want:     map[string]float64{"A": 60, "B": -30, "C": -30},
			wantKeys: []string{"A", "B", "C"},
		},
		{
			name: "payer is not a beneficiary",
			ledger: func(t *testing.T) *Ledger {
				l := newGroup(t, "A", "B", "C")
				spend(t, l, "A", 100, "B", "C")
				return l
			},
			want:     map[string]float64{"A": 100, "B": -50, "C": -50},
			wantKeys: []string{"A", "B", "C"},
		},
		{
			name: "several expenses",
			ledger: func(t *testing.T) *Ledger {
				l := newGroup(t, "A", "B", "C")
				spend(t, l, "A", 90, "A", "B", "C")
				spend(t, l, "B", 30, "A", "C")
				return l
			},
			want:     map[string]float64{"A": 45, "B": 0, "C": -45},
			wantKeys: []string{"A", "B", "C"},
		},
		{
			name: "unlisted names",
			ledger: func(t *testing.T) *Ledger {
				l := newGroup(t, "A")
				spend(t, l, "X", 20, "A", "Y")
				return l
			},
			want:     map[string]float64{"A": -10, "X": 20, "Y": -10},
			wantKeys: []string{"A", "X", "Y"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.ledger(t).CalculateBalances()
			if diff := cmp.Diff(tc.wantKeys, b.Names()); diff != "" {
				t.Errorf("Names() mismatch (-want +got):\n%s", diff)
			}
			if b.Len() != len(tc.want) {
				t.Errorf("Len() = %d, want %d", b.Len(), len(tc.want))
			}
			for name, want := range tc.want {
				if !b.Has(name) {
					t.Errorf("missing balance for %q", name)
				}
				if got := b.Get(name); !got.Equal(D(want)) {
					t.Errorf("balance of %q = %s, want %v", name, got, want)
				}
			}
			if !settled(b.Sum()) {
				t.Errorf("Sum() = %s, want 0", b.Sum())
			}
		})
	}
}

func TestBalances_Conservation(t *testing.T) {
	// shares that do not divide evenly.
	l := newGroup(t, "A", "B", "C", "D", "E", "F", "G")
	spend(t, l, "A", 100, "A", "B", "C")
	spend(t, l, "B", 10, "C", "D", "E", "F", "G", "A")
	spend(t, l, "G", 33.33, "A", "B", "C", "D", "E", "F", "G")
	spend(t, l, "D", 0.01, "E", "F", "G")

	b := l.CalculateBalances()
	if !settled(b.Sum()) {
		t.Errorf("Sum() = %s, want 0 within %s", b.Sum(), Tolerance)
	}
}

func TestBalances_Sorted(t *testing.T) {
	l := newGroup(t, "A", "B", "C", "D")
	spend(t, l, "A", 90, "A", "B", "C")
	spend(t, l, "D", 30, "B", "C")

	var got []string
	for _, e := range l.CalculateBalances().Sorted() {
		got = append(got, e.Name+" "+e.Balance.String())
	}
	// B and C both owe 45, they keep the roster order.
	want := []string{"A 60", "D 30", "B -45", "C -45"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sorted() mismatch (-want +got):\n%s", diff)
	}

	// settled balances are skipped.
	if got := newGroup(t, "A", "B").CalculateBalances().Sorted(); len(got) != 0 {
		t.Errorf("Sorted() = %v, want no entries", got)
	}
}

func TestBalances_Apply(t *testing.T) {
	b := dinner(t).CalculateBalances()
	after := b.Apply([]Settlement{
		{From: "B", To: "A", Amount: D(30)},
		{From: "C", To: "A", Amount: D(30)},
	})
	if !after.Settled() {
		t.Errorf("balances after the payments = %v, want all settled", after.Map())
	}
	// b is unchanged.
	if got := b.Get("A"); !got.Equal(D(60)) {
		t.Errorf("Apply() modified the receiver: A = %s", got)
	}
}
