package ganan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/PaesslerAG/jsonpath"
)

// FileStore is a Store persisted as a single JSON object in a file.
//
// Every Set rewrites the whole file.
type FileStore struct {
	path string
	doc  map[string]any
}

// OpenFileStore opens the JSON file at path.
//
// A missing file is an empty store, it is created on the first Set. A
// malformed file is also read as an empty store, and will be overwritten.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, doc: make(map[string]any)}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read store %q: %w", path, err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return s, nil
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber() // keep amounts exact
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil || doc == nil {
		log.Printf("warning, store %q is malformed, starting from an empty store: %v", path, err)
		return s, nil
	}
	s.doc = doc
	return s, nil
}

// Path returns the file path of the store.
func (s *FileStore) Path() string { return s.path }

// legacyPrefix is the prefix the browser application puts on its keys.
const legacyPrefix = "ganan_"

// paths returns the queries tried in order to find key: the plain key, then
// the browser export forms, prefixed keys or an object named after the
// application.
func paths(key string) []string {
	return []string{
		"$." + key,
		"$." + legacyPrefix + key,
		"$.ganan." + key,
	}
}

// Get returns the JSON value stored under key.
//
// Documents exported from the browser application are read too: a missing key
// is looked up as "ganan_<key>", then inside a "ganan" object. Set always
// writes the plain key, which then takes precedence.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	for _, path := range paths(key) {
		v, err := jsonpath.Get(path, s.doc)
		if err != nil {
			continue // unknown key
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, false, fmt.Errorf("could not encode %q: %w", key, err)
		}
		return raw, true, nil
	}
	return nil, false, nil
}

// Set stores a JSON value under key and writes the file.
func (s *FileStore) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("invalid JSON value for %q", key)
	}
	s.doc[key] = json.RawMessage(slices.Clone(value))
	return s.flush()
}

// Delete removes key, and its browser export forms, and writes the file.
func (s *FileStore) Delete(key string) error {
	found := false
	for _, k := range []string{key, legacyPrefix + key} {
		if _, exists := s.doc[k]; exists {
			delete(s.doc, k)
			found = true
		}
	}
	if nested, ok := s.doc["ganan"].(map[string]any); ok {
		if _, exists := nested[key]; exists {
			delete(nested, key)
			found = true
		}
	}
	if !found {
		return nil
	}
	return s.flush()
}

// flush writes the document, known keys first, into a temporary file then
// renames it.
func (s *FileStore) flush() error {
	var w jsonObjectWriter
	for _, key := range Keys {
		if v, ok := s.doc[key]; ok {
			w.Append(key, v)
		}
	}
	others := slices.Sorted(maps.Keys(s.doc))
	for _, key := range others {
		if !slices.Contains(Keys, key) {
			w.Append(key, s.doc[key])
		}
	}
	content, err := w.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode store %q: %w", s.path, err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, content, "", "  "); err != nil {
		return fmt.Errorf("could not indent store %q: %w", s.path, err)
	}
	indented.WriteByte('\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for store %q: %w", s.path, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary file for store %q: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(indented.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing store %q: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing store %q: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("error replacing store %q: %w", s.path, err)
	}
	return nil
}
