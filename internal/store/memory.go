package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/temperature-chart/internal/chart"
)

var (
	// ErrNotFound is returned when no chart state has been loaded (or none matches a range).
	ErrNotFound = errors.New("no chart data loaded")
)

// MemoryStore is a concurrency-safe in-memory holder of chart states.
// The newest state is served to renders; older ones are kept as load history.
type MemoryStore struct {
	mu sync.RWMutex

	// oldest first
	history []*chart.State

	// retention configuration
	maxHistory int           // max number of states kept
	maxAge     time.Duration // optional max age of states
	now        func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save makes state the current one and enforces retention.
// The current state is never evicted, however old it is.
func (s *MemoryStore) Save(state *chart.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, state)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		over := len(s.history) - s.maxHistory
		s.history = s.history[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.history)-1; i++ {
			if !s.history[i].LoadedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.history = s.history[i:]
		}
	}
}

// Current returns the most recently saved state.
func (s *MemoryStore) Current() (*chart.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return nil, ErrNotFound
	}
	return s.history[len(s.history)-1], nil
}

// Range returns all kept states loaded between from and to (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]*chart.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*chart.State
	for _, st := range s.history {
		if !st.LoadedAt.Before(from) && !st.LoadedAt.After(to) {
			result = append(result, st)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
