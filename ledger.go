package ganan

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyName is returned when a participant name is blank.
	ErrEmptyName = errors.New("participant name is empty")
	// ErrDuplicateParticipant is returned when adding a participant that already exists.
	ErrDuplicateParticipant = errors.New("participant already exists")
	// ErrUnknownParticipant is returned when removing a participant that is not in the roster.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrInvalidExpense is returned when an expense breaks one of its invariants.
	ErrInvalidExpense = errors.New("invalid expense")
	// ErrIndexOutOfRange is returned when an expense index does not exist.
	ErrIndexOutOfRange = errors.New("expense index out of range")
	// ErrNoCollector is returned when collector settlements are requested without a collector.
	ErrNoCollector = errors.New("no collector selected")
)

// Ledger holds the participants of a group and the expenses they shared.
//
// A Ledger is edited through commands (AddParticipant, AddExpense, ...). A
// command either applies its change or returns an error and leaves the
// ledger untouched. Balances and settlements are always recomputed from
// scratch.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	participants []string
	expenses     []Expense
	mode         SettlementMode
	collector    string

	// pending edit
	editing   bool
	editIndex int
}

// NewLedger creates an empty ledger in Optimized mode.
func NewLedger() *Ledger {
	return &Ledger{
		participants: make([]string, 0),
		expenses:     make([]Expense, 0),
		mode:         Optimized,
	}
}

// Participants returns the roster in insertion order.
func (l *Ledger) Participants() []string { return slices.Clone(l.participants) }

// HasParticipant returns true if name is in the roster.
func (l *Ledger) HasParticipant(name string) bool { return slices.Contains(l.participants, name) }

// Expenses returns an iterator over the expenses with their index.
func (l *Ledger) Expenses() iter.Seq2[int, Expense] {
	return func(yield func(int, Expense) bool) {
		for i, e := range l.expenses {
			if !yield(i, e.clone()) {
				return
			}
		}
	}
}

// Len returns the number of expenses.
func (l *Ledger) Len() int { return len(l.expenses) }

// Expense returns the expense at index i.
func (l *Ledger) Expense(i int) (Expense, error) {
	if i < 0 || i >= len(l.expenses) {
		return Expense{}, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(l.expenses))
	}
	return l.expenses[i].clone(), nil
}

// Mode returns the current settlement mode.
func (l *Ledger) Mode() SettlementMode { return l.mode }

// Collector returns the designated collector, or "" if none.
func (l *Ledger) Collector() string { return l.collector }

// AddParticipant appends a participant to the roster.
func (l *Ledger) AddParticipant(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if l.HasParticipant(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateParticipant, name)
	}
	l.participants = append(l.participants, name)
	return nil
}

// RemoveParticipant removes a participant from the roster.
//
// Expenses that refer to this participant are kept as is: they still count in
// the balances, under a name that is no longer listed.
func (l *Ledger) RemoveParticipant(name string) error {
	i := slices.Index(l.participants, name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParticipant, name)
	}
	l.participants = slices.Delete(l.participants, i, i+1)
	return nil
}

// AddExpense records an expense paid by payer for the beneficiaries.
//
// If an edit is pending (see BeginEdit) the edited expense is replaced instead,
// and the ledger goes back to idle. An invalid expense is rejected and the
// pending edit, if any, is kept.
func (l *Ledger) AddExpense(payer string, amount decimal.Decimal, beneficiaries []string, description string) error {
	e := NewExpense(payer, amount, beneficiaries, description)
	if err := e.Validate(); err != nil {
		return err
	}
	if l.editing {
		l.expenses[l.editIndex] = e
		l.CancelEdit()
		return nil
	}
	l.expenses = append(l.expenses, e)
	return nil
}

// RemoveExpense deletes the expense at index i.
func (l *Ledger) RemoveExpense(i int) error {
	if i < 0 || i >= len(l.expenses) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(l.expenses))
	}
	l.expenses = slices.Delete(l.expenses, i, i+1)
	// keep the pending edit pointing to the same record.
	switch {
	case !l.editing:
	case l.editIndex == i:
		l.CancelEdit()
	case l.editIndex > i:
		l.editIndex--
	}
	return nil
}

// SetMode changes the settlement mode.
//
// When switching to Collector mode with no collector, the first participant
// becomes the collector.
func (l *Ledger) SetMode(mode SettlementMode) {
	l.mode = mode
	if mode == Collector && l.collector == "" && len(l.participants) > 0 {
		l.collector = l.participants[0]
	}
}

// SetCollector designates the collector. An empty name clears it.
func (l *Ledger) SetCollector(name string) {
	l.collector = strings.TrimSpace(name)
}

// ClearAll removes every participant and every expense. The settlement
// mode and the collector are kept.
func (l *Ledger) ClearAll() {
	l.participants = make([]string, 0)
	l.expenses = make([]Expense, 0)
	l.CancelEdit()
}
