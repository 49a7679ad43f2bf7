package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/ganan"
	"github.com/etnz/ganan/sqlite"
)

// Store is a ganan.Store that must be closed.
type Store interface {
	ganan.Store
	Close() error
}

// fileStore adapts a ganan.FileStore, it has nothing to close.
type fileStore struct{ *ganan.FileStore }

func (fileStore) Close() error { return nil }

// OpenStore opens the store at location.
//
// Locations starting with "sqlite:", or ending with .db, .sqlite or .sqlite3
// are SQLite databases, anything else is a JSON file.
func OpenStore(location string) (Store, error) {
	if path, ok := strings.CutPrefix(location, "sqlite:"); ok {
		return sqlite.Open(path)
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.Open(location)
	}
	s, err := ganan.OpenFileStore(location)
	if err != nil {
		return nil, err
	}
	return fileStore{s}, nil
}

// openSession opens the configured store and loads the session from it.
// The returned function must be called to release the store.
func openSession(cfg Config) (*ganan.Session, func(), error) {
	store, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open store %q: %w", cfg.Store, err)
	}
	session, err := ganan.OpenSession(store)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("could not load ledger from %q: %w", cfg.Store, err)
	}
	return session, func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing store %q: %v\n", cfg.Store, err)
		}
	}, nil
}
