package ganan

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveLoad(t *testing.T) {
	l := dinner(t)
	spend(t, l, "B", 12.5, "C")
	l.SetMode(Collector)
	l.SetCollector("C")

	s := NewMemoryStore()
	if err := Save(s, l); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	wantRaw := map[string]string{
		KeyParticipants:   `["A","B","C"]`,
		KeyExpenses:       `[{"payer":"A","amount":90,"beneficiaries":["A","B","C"],"description":"No description"},{"payer":"B","amount":12.5,"beneficiaries":["C"],"description":"No description"}]`,
		KeySettlementMode: `false`,
		KeyCollector:      `"C"`,
	}
	for key, want := range wantRaw {
		if got := string(s[key]); got != want {
			t.Errorf("stored %s = %s, want %s", key, got, want)
		}
	}

	got, err := Load(s)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(l.Participants(), got.Participants()); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}
	if got.Len() != l.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), l.Len())
	}
	for i, want := range l.Expenses() {
		e, _ := got.Expense(i)
		if diff := cmp.Diff(want, e); diff != "" {
			t.Errorf("expense %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	if got.Mode() != Collector || got.Collector() != "C" {
		t.Errorf("settings = %v/%q, want collector/C", got.Mode(), got.Collector())
	}

	// saving again does not change anything.
	again := NewMemoryStore()
	if err := Save(again, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s, again); diff != "" {
		t.Errorf("second save mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_NoCollector(t *testing.T) {
	s := NewMemoryStore()
	s[KeyCollector] = []byte(`"B"`)
	if err := Save(s, NewLedger()); err != nil {
		t.Fatal(err)
	}
	if _, ok := s[KeyCollector]; ok {
		t.Errorf("collector key is still stored")
	}
	if got := string(s[KeySettlementMode]); got != "true" {
		t.Errorf("stored settlement mode = %s, want true", got)
	}
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name             string
		store            map[string]string
		wantParticipants []string
		wantExpenses     int
		wantMode         SettlementMode
		wantCollector    string
	}{
		{
			name:             "empty store",
			store:            map[string]string{},
			wantParticipants: []string{},
			wantMode:         Optimized,
		},
		{
			name: "malformed values",
			store: map[string]string{
				KeyParticipants:   `{"A":1}`,
				KeyExpenses:       `"nope"`,
				KeySettlementMode: `"optimized"`,
			},
			wantParticipants: []string{},
			wantMode:         Optimized,
		},
		{
			name: "null settlement mode",
			store: map[string]string{
				KeySettlementMode: `null`,
				KeyCollector:      `"B"`,
			},
			wantParticipants: []string{},
			wantMode:         Optimized,
			wantCollector:    "B",
		},
		{
			name: "duplicate and blank participants",
			store: map[string]string{
				KeyParticipants: `["A"," ","B","A"]`,
			},
			wantParticipants: []string{"A", "B"},
			wantMode:         Optimized,
		},
		{
			name: "invalid expenses are dropped",
			store: map[string]string{
				KeyParticipants: `["A","B"]`,
				KeyExpenses: `[
					{"payer":"A","amount":10,"beneficiaries":["B"]},
					{"payer":"A","amount":-1,"beneficiaries":["B"]},
					{"payer":"","amount":5,"beneficiaries":["B"]},
					{"payer":"A","amount":5,"beneficiaries":[]},
					42,
					{"payer":"B","amount":"7.5","for":["A"]}
				]`,
			},
			wantParticipants: []string{"A", "B"},
			wantExpenses:     2,
			wantMode:         Optimized,
		},
		{
			name: "collector mode",
			store: map[string]string{
				KeySettlementMode: `false`,
				KeyCollector:      `"B"`,
			},
			wantParticipants: []string{},
			wantMode:         Collector,
			wantCollector:    "B",
		},
		{
			name: "unquoted collector",
			store: map[string]string{
				KeyCollector: `Bob`,
			},
			wantParticipants: []string{},
			wantMode:         Optimized,
			wantCollector:    "Bob",
		},
		{
			name: "null collector",
			store: map[string]string{
				KeyCollector: `null`,
			},
			wantParticipants: []string{},
			wantMode:         Optimized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewMemoryStore()
			for k, v := range tc.store {
				s[k] = []byte(v)
			}
			l, err := Load(s)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if diff := cmp.Diff(tc.wantParticipants, l.Participants()); diff != "" {
				t.Errorf("participants mismatch (-want +got):\n%s", diff)
			}
			if l.Len() != tc.wantExpenses {
				t.Errorf("Len() = %d, want %d", l.Len(), tc.wantExpenses)
			}
			if l.Mode() != tc.wantMode {
				t.Errorf("Mode() = %v, want %v", l.Mode(), tc.wantMode)
			}
			if l.Collector() != tc.wantCollector {
				t.Errorf("Collector() = %q, want %q", l.Collector(), tc.wantCollector)
			}
		})
	}
}

func TestLoad_StoreFailure(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Load(failingStore{boom}); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
	if err := Save(failingStore{boom}, NewLedger()); !errors.Is(err, boom) {
		t.Errorf("Save() error = %v, want %v", err, boom)
	}
}

func TestExpense_UnmarshalJSON(t *testing.T) {
	var e Expense
	if err := json.Unmarshal([]byte(`{"payer":" A ","amount":"30","for":["B","B","C"],"description":""}`), &e); err != nil {
		t.Fatal(err)
	}
	want := Expense{Payer: "A", Amount: D(30), Beneficiaries: []string{"B", "C"}, Description: NoDescription}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("UnmarshalJSON() mismatch (-want +got):\n%s", diff)
	}
}
