package ganan

import "fmt"

// SettlementMode defines how settlements are computed from balances.
type SettlementMode int

const (
	// Optimized greedily matches debtors with creditors to keep the number of payments low.
	Optimized SettlementMode = iota
	// Collector routes every payment through a single designated participant.
	Collector
)

func (m SettlementMode) String() string {
	switch m {
	case Optimized:
		return "optimized"
	case Collector:
		return "collector"
	default:
		return "unknown"
	}
}

// Title returns the human readable name of the mode.
func (m SettlementMode) Title() string {
	switch m {
	case Optimized:
		return "Optimized"
	case Collector:
		return "Simple Collection"
	default:
		return "Unknown"
	}
}

// ParseSettlementMode parses a string into a SettlementMode.
func ParseSettlementMode(s string) (SettlementMode, error) {
	switch s {
	case "optimized", "smart":
		return Optimized, nil
	case "collector", "simple":
		return Collector, nil
	default:
		return 0, fmt.Errorf("unknown settlement mode: %q", s)
	}
}
