// Package cache holds the last-known-good forecast per station, used to mask
// transient upstream failures.
package cache

import (
	"sync"
	"time"

	"github.com/couchcryptid/forecast-bulletin-etl/internal/domain"
)

// Entry is one cached result together with its capture instant.
type Entry struct {
	Result     domain.ForecastResult
	CapturedAt time.Time
}

// Store is a concurrency-safe station-keyed freshness cache. Entries are
// written only on successful extraction runs and never expire on their own;
// staleness is a flag the caller sets when serving them, not a deletion
// policy. Concurrent writers follow last-write-wins.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Put overwrites the entry for a station.
func (s *Store) Put(station string, result domain.ForecastResult, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[station] = Entry{Result: result, CapturedAt: at}
}

// Get returns the entry for a station, if one has ever been stored.
func (s *Store) Get(station string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[station]
	return e, ok
}
