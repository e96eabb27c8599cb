// Package cache memoizes (answer, chunks) pairs per query string.
//
// The key is the raw query exactly as submitted: case and whitespace
// sensitive, no normalization. Semantically identical queries with
// different casing are distinct entries; clients relying on existing cache
// files depend on that.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"scholar-rag/internal/models"
)

// Entry is one cached result.
type Entry struct {
	Answer string                  `json:"answer"`
	Chunks []models.RetrievedChunk `json:"chunks"`
}

// Store is a mutex-guarded, file-backed query cache. Every Put rewrites
// the whole file; the in-memory map stays authoritative for the process
// lifetime even when a disk write fails.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
}

// Load reads the cache file if present. A malformed or unreadable file
// resets to an empty mapping; that is logged, never fatal.
func Load(path string) *Store {
	s := &Store{path: path, entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("Failed to load answer cache, starting empty")
		}
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Malformed answer cache, starting empty")
		s.entries = make(map[string]Entry)
	}
	return s
}

// Get returns the stored pair for the exact query string.
func (s *Store) Get(query string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[query]
	return entry, ok
}

// Put inserts or overwrites the entry and persists the full mapping. A
// persistence failure is logged and swallowed.
func (s *Store) Put(query, answer string, chunks []models.RetrievedChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[query] = Entry{Answer: answer, Chunks: chunks}
	if err := s.persist(); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Failed to persist answer cache")
	}
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
