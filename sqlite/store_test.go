package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/etnz/ganan"
	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", path, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ganan.db"))

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v, want false, nil", ok, err)
	}
	if err := s.Set("k", []byte(`"v1"`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", []byte(`"v2"`)); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = %v, %v", ok, err)
	}
	if string(got) != `"v2"` {
		t.Errorf("Get(k) = %s, want %q", got, `"v2"`)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Errorf("k is still stored after Delete()")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete() of a missing key failed: %v", err)
	}
}

func TestStore_Ledger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ganan.db")

	session, err := ganan.OpenSession(openTestStore(t, path))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"A", "B", "C"} {
		if err := session.AddParticipant(name); err != nil {
			t.Fatal(err)
		}
	}
	if err := session.AddExpense("A", ganan.D(90), []string{"A", "B", "C"}, "Dinner"); err != nil {
		t.Fatal(err)
	}
	session.SetMode(ganan.Collector)

	// a second connection sees the saved ledger.
	l, err := ganan.Load(openTestStore(t, path))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, l.Participants()); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}
	settlements, err := l.CalculateSettlements()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range settlements {
		got = append(got, s.String())
	}
	// A became the collector when switching modes.
	if diff := cmp.Diff([]string{"B pays A 30.00", "C pays A 30.00"}, got); diff != "" {
		t.Errorf("settlements mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Errorf("Open() accepted an empty path")
	}
}
