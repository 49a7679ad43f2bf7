package ganan

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// NoDescription is the description given to expenses recorded without one.
const NoDescription = "No description"

// Expense is an amount paid by one participant on behalf of some beneficiaries.
//
// The amount is split equally among the beneficiaries. The payer can be one
// of the beneficiaries.
type Expense struct {
	Payer         string
	Amount        decimal.Decimal
	Beneficiaries []string
	Description   string
}

// NewExpense creates a normalized Expense: names are trimmed, beneficiaries
// are deduplicated and a blank description is replaced by NoDescription.
//
// The returned expense is not validated.
func NewExpense(payer string, amount decimal.Decimal, beneficiaries []string, description string) Expense {
	description = strings.TrimSpace(description)
	if description == "" {
		description = NoDescription
	}
	return Expense{
		Payer:         strings.TrimSpace(payer),
		Amount:        amount,
		Beneficiaries: cleanNames(beneficiaries),
		Description:   description,
	}
}

// cleanNames trims names, drops the empty ones and the duplicates, keeping the first occurrence.
func cleanNames(names []string) []string {
	clean := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(clean, name) {
			continue
		}
		clean = append(clean, name)
	}
	return clean
}

// Validate checks the expense invariants and returns all failures.
func (e Expense) Validate() error {
	var errs error
	if e.Payer == "" {
		errs = errors.Join(errs, errors.New("payer is missing"))
	}
	if !e.Amount.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("amount must be positive, got %s", e.Amount))
	}
	if len(e.Beneficiaries) == 0 {
		errs = errors.Join(errs, errors.New("at least one beneficiary is required"))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpense, errs)
	}
	return nil
}

// Share returns the amount owed by each beneficiary.
func (e Expense) Share() decimal.Decimal {
	if len(e.Beneficiaries) == 0 {
		return decimal.Zero
	}
	return e.Amount.Div(decimal.NewFromInt(int64(len(e.Beneficiaries))))
}

// clone returns a deep copy of the expense.
func (e Expense) clone() Expense {
	e.Beneficiaries = slices.Clone(e.Beneficiaries)
	return e
}

// MarshalJSON writes the expense with a stable field order.
func (e Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("payer", e.Payer)
	w.Append("amount", e.Amount)
	beneficiaries := e.Beneficiaries
	if beneficiaries == nil {
		beneficiaries = []string{}
	}
	w.Append("beneficiaries", beneficiaries)
	w.Append("description", e.Description)
	return w.MarshalJSON()
}

// UnmarshalJSON reads an expense. The beneficiaries can also be found in a
// field named "for".
func (e *Expense) UnmarshalJSON(data []byte) error {
	var temp struct {
		Payer         string          `json:"payer"`
		Amount        decimal.Decimal `json:"amount"`
		Beneficiaries []string        `json:"beneficiaries"`
		For           []string        `json:"for"`
		Description   string          `json:"description"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	beneficiaries := temp.Beneficiaries
	if len(beneficiaries) == 0 {
		beneficiaries = temp.For
	}
	*e = NewExpense(temp.Payer, temp.Amount, beneficiaries, temp.Description)
	return nil
}
