// Package localstore provides a small file-backed key/value store. It plays
// the role browser local storage played for the web client: a handful of
// string-encoded keys read on startup and written on every mutation.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists string keys to a single JSON file.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the store file at dir/companion_state.json, creating an empty
// store when the file does not exist yet.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, "companion_state.json")
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read local store: %w", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to decode local store: %w", err)
	}
	return s, nil
}

// Get returns the stored value for key, or "" when absent.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Set stores the value and flushes the file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

// SetAll stores several keys in one flush.
func (s *Store) SetAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return s.flush()
}

// flush writes via a temp file so a crash mid-write cannot truncate state.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode local store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace local store: %w", err)
	}
	return nil
}
