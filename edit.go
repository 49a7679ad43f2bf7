package ganan

import "fmt"

// The ledger has a single pending edit slot: it is either idle, or editing
// one expense. The next AddExpense overwrites the expense being edited.

// BeginEdit marks the expense at index i as being edited.
//
// Beginning an edit while another one is pending silently switches to i.
func (l *Ledger) BeginEdit(i int) error {
	if i < 0 || i >= len(l.expenses) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(l.expenses))
	}
	l.editing, l.editIndex = true, i
	return nil
}

// CancelEdit discards the pending edit, if any.
func (l *Ledger) CancelEdit() { l.editing, l.editIndex = false, 0 }

// Editing returns the index of the expense being edited and true, or false
// if the ledger is idle.
func (l *Ledger) Editing() (int, bool) {
	return l.editIndex, l.editing
}
