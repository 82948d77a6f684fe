// Package state persists the last observed loan flag per (ISBN, branch)
// pair as a flat JSON object in a local file.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Key builds the composite key for a (book, branch) pair. The concatenated
// form is the persisted format; existing status files depend on it, so it
// must not change. ISBNs and branch codes are digit strings and can never
// contain the separator.
func Key(isbn, libCode string) string {
	return isbn + "_" + libCode
}

// Store reads and rewrites the availability mapping wholesale. Entries are
// never pruned: a pair observed once stays in the file even after its watch
// row is deleted.
//
// Single writer only. Save replaces the entire file, so two concurrent
// passes would silently drop each other's updates.
type Store struct {
	path string
	log  *slog.Logger
}

func NewStore(path string, log *slog.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load returns the full persisted mapping. A missing file is a normal first
// run; a corrupt one is logged and treated as empty rather than aborting
// the pass.
func (s *Store) Load() map[string]string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("read state file", "path", s.path, "error", err)
		}
		return map[string]string{}
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil {
		s.log.Error("corrupt state file, starting empty", "path", s.path, "error", err)
		return map[string]string{}
	}
	return m
}

// Save rewrites the mapping. It writes a temp file in the same directory
// and renames it over the target, so a crash mid-write never leaves a
// truncated file behind.
func (s *Store) Save(m map[string]string) error {
	b, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
