package store

import (
	"sort"
	"sync"

	"github.com/tpowell-gbuapcd/Solar/internal/simulator"
)

// Store holds simulation results in memory, indexed by peak solar hours.
// It is safe for concurrent use by the goroutines running each profile.
type Store struct {
	mu      sync.RWMutex
	results map[int]simulator.Result
}

func New() *Store {
	return &Store{
		results: make(map[int]simulator.Result),
	}
}

// Add stores a result, replacing any earlier result for the same profile.
func (s *Store) Add(r simulator.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.PeakHours] = r
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Results returns all results, longest solar window first.
func (s *Store) Results() []simulator.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]simulator.Result, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PeakHours > out[j].PeakHours
	})
	return out
}
