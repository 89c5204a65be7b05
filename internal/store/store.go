// Package store records recommendation runs in memory so callers can read
// back what the engine produced and when. The engine itself never touches
// the store; the surrounding layer records batches after receiving them.
package store

import (
	"sync"
	"time"

	"github.com/adlumen/budget-engine/internal/engine"
	"github.com/google/uuid"
)

// Run captures one engine invocation: its parameters, the batch it
// produced, and timing metadata.
type Run struct {
	ID              string                  `json:"id"`
	CreatedAt       time.Time               `json:"createdAt"`
	Focus           string                  `json:"focus"`
	Timeframe       int                     `json:"timeframe"`
	Variant         string                  `json:"variant"`
	RowCount        int                     `json:"rowCount"`
	CampaignCount   int                     `json:"campaignCount"`
	Duration        time.Duration           `json:"duration"`
	Recommendations []engine.Recommendation `json:"recommendations"`
}

// MemoryStore is an in-memory run recorder safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	runs  map[string]Run
	order []string // insertion order, oldest first
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]Run)}
}

// Record stores a run, assigning an ID and creation time when absent, and
// returns the stored value.
func (s *MemoryStore) Record(run Run) Run {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.ID]; !exists {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run
	return run
}

// Get returns the run with the given ID.
func (s *MemoryStore) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// List returns all recorded runs, newest first.
func (s *MemoryStore) List() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]Run, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		runs = append(runs, s.runs[s.order[i]])
	}
	return runs
}

// Len reports the number of recorded runs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
