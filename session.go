package ganan

import (
	"log"

	"github.com/shopspring/decimal"
)

// Session is a Ledger bound to a Store: every successful command is saved
// right away.
//
// Saving is best effort. If the store fails the change is kept in memory and
// the command still succeeds, only the failure is logged.
type Session struct {
	*Ledger
	store Store
}

// OpenSession loads the ledger from store.
func OpenSession(store Store) (*Session, error) {
	l, err := Load(store)
	if err != nil {
		return nil, err
	}
	return &Session{Ledger: l, store: store}, nil
}

// save persists the ledger if err is nil, and returns err.
func (s *Session) save(err error) error {
	if err != nil {
		return err
	}
	if saveErr := Save(s.store, s.Ledger); saveErr != nil {
		log.Printf("warning, changes will not survive a restart: %v", saveErr)
	}
	return nil
}

func (s *Session) AddParticipant(name string) error {
	return s.save(s.Ledger.AddParticipant(name))
}

func (s *Session) RemoveParticipant(name string) error {
	return s.save(s.Ledger.RemoveParticipant(name))
}

func (s *Session) AddExpense(payer string, amount decimal.Decimal, beneficiaries []string, description string) error {
	return s.save(s.Ledger.AddExpense(payer, amount, beneficiaries, description))
}

func (s *Session) RemoveExpense(i int) error {
	return s.save(s.Ledger.RemoveExpense(i))
}

func (s *Session) SetMode(mode SettlementMode) {
	s.Ledger.SetMode(mode)
	_ = s.save(nil)
}

func (s *Session) SetCollector(name string) {
	s.Ledger.SetCollector(name)
	_ = s.save(nil)
}

func (s *Session) ClearAll() {
	s.Ledger.ClearAll()
	_ = s.save(nil)
}
