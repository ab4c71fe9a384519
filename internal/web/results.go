package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scrubdata/scrub/internal/cleaner"
	"github.com/scrubdata/scrub/internal/table"
)

// Result holds one finished cleaning run, kept in memory until downloaded
// or expired. Nothing is persisted beyond the process.
type Result struct {
	ID        string
	Filename  string
	Table     *table.Table
	Report    *cleaner.Report
	CreatedAt time.Time
}

// ResultStore is an in-memory, TTL-evicted store of cleaning results,
// keyed by a generated UUID.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]*Result
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewResultStore creates a store whose entries expire after ttl.
// A background janitor sweeps expired entries once a minute until Close.
func NewResultStore(ttl time.Duration) *ResultStore {
	s := &ResultStore{
		results: make(map[string]*Result),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// sweep removes expired results once a minute.
func (s *ResultStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for id, res := range s.results {
			if res.CreatedAt.Before(cutoff) {
				delete(s.results, id)
			}
		}
		s.mu.Unlock()
	}
}

// Close stops the janitor goroutine. The store stays readable; entries past
// their TTL are still rejected by Get. Safe to call more than once.
func (s *ResultStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Put stores a result under a fresh UUID and returns the ID.
func (s *ResultStore) Put(res *Result) string {
	res.ID = uuid.New().String()
	res.CreatedAt = time.Now()

	s.mu.Lock()
	s.results[res.ID] = res
	s.mu.Unlock()

	return res.ID
}

// Get returns the result for id, or false if it was never stored or has
// already expired.
func (s *ResultStore) Get(id string) (*Result, bool) {
	s.mu.RLock()
	res, ok := s.results[id]
	s.mu.RUnlock()

	if !ok || time.Since(res.CreatedAt) > s.ttl {
		return nil, false
	}
	return res, true
}

// Len returns the number of live entries, expired ones included until the
// next sweep.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
