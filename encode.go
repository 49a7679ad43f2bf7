package ganan

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Keys under which the ledger is persisted.
const (
	KeyParticipants   = "participants"
	KeyExpenses       = "expenses"
	KeySettlementMode = "settlementMode"
	KeyCollector      = "collector"
)

// Keys lists all the persisted keys.
var Keys = []string{KeyParticipants, KeyExpenses, KeySettlementMode, KeyCollector}

// Store is a key-value store holding JSON values.
type Store interface {
	// Get returns the value stored under key, and false if there is none.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key.
	Set(key string, value []byte) error
	// Delete removes key, it is not an error if key does not exist.
	Delete(key string) error
}

// Load decodes a ledger from a store.
//
// Missing or malformed keys are replaced by their initial value: an empty
// store decodes into an empty ledger. Only store failures are returned.
func Load(s Store) (*Ledger, error) {
	l := NewLedger()

	raw, ok, err := s.Get(KeyParticipants)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", KeyParticipants, err)
	}
	if ok {
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			log.Printf("warning, ignoring malformed %q: %v", KeyParticipants, err)
			names = nil
		}
		for _, name := range names {
			// duplicates and blank names are silently dropped.
			_ = l.AddParticipant(name)
		}
	}

	raw, ok, err = s.Get(KeyExpenses)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", KeyExpenses, err)
	}
	if ok {
		var expenses []json.RawMessage
		if err := json.Unmarshal(raw, &expenses); err != nil {
			log.Printf("warning, ignoring malformed %q: %v", KeyExpenses, err)
			expenses = nil
		}
		for i, data := range expenses {
			var e Expense
			if err := json.Unmarshal(data, &e); err != nil {
				log.Printf("warning, ignoring malformed expense #%d: %v", i, err)
				continue
			}
			if err := e.Validate(); err != nil {
				log.Printf("warning, ignoring expense #%d: %v", i, err)
				continue
			}
			l.expenses = append(l.expenses, e)
		}
	}

	raw, ok, err = s.Get(KeySettlementMode)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", KeySettlementMode, err)
	}
	if ok {
		// only an explicit false selects the collector mode.
		var optimized *bool
		if err := json.Unmarshal(raw, &optimized); err != nil || optimized == nil {
			log.Printf("warning, ignoring malformed %q: %s", KeySettlementMode, raw)
		} else if !*optimized {
			l.mode = Collector
		}
	}

	raw, ok, err = s.Get(KeyCollector)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", KeyCollector, err)
	}
	if ok {
		l.SetCollector(decodeCollector(raw))
	}
	return l, nil
}

// decodeCollector accepts a JSON string, or a raw unquoted name.
func decodeCollector(raw []byte) string {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || strings.ContainsAny(s[:1], `{["`) {
		return ""
	}
	return s
}

// Save encodes the ledger into a store.
func Save(s Store, l *Ledger) error {
	participants, err := json.Marshal(l.participants)
	if err != nil {
		return fmt.Errorf("could not encode participants: %w", err)
	}
	expenses, err := json.Marshal(l.expenses)
	if err != nil {
		return fmt.Errorf("could not encode expenses: %w", err)
	}
	mode, err := json.Marshal(l.mode == Optimized)
	if err != nil {
		return fmt.Errorf("could not encode settlement mode: %w", err)
	}

	if err := s.Set(KeyParticipants, participants); err != nil {
		return fmt.Errorf("could not write %q: %w", KeyParticipants, err)
	}
	if err := s.Set(KeyExpenses, expenses); err != nil {
		return fmt.Errorf("could not write %q: %w", KeyExpenses, err)
	}
	if err := s.Set(KeySettlementMode, mode); err != nil {
		return fmt.Errorf("could not write %q: %w", KeySettlementMode, err)
	}
	if l.collector == "" {
		if err := s.Delete(KeyCollector); err != nil {
			return fmt.Errorf("could not delete %q: %w", KeyCollector, err)
		}
		return nil
	}
	collector, err := json.Marshal(l.collector)
	if err != nil {
		return fmt.Errorf("could not encode collector: %w", err)
	}
	if err := s.Set(KeyCollector, collector); err != nil {
		return fmt.Errorf("could not write %q: %w", KeyCollector, err)
	}
	return nil
}

// MemoryStore is a Store kept in memory.
type MemoryStore map[string][]byte

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() MemoryStore { return make(MemoryStore) }

func (m MemoryStore) Get(key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m MemoryStore) Set(key string, value []byte) error {
	m[key] = append([]byte(nil), value...)
	return nil
}

func (m MemoryStore) Delete(key string) error {
	delete(m, key)
	return nil
}
