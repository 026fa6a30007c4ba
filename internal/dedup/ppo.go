package dedup

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"go-placement-automation/internal/models"
)

// PPOSet collects PPO records across a whole run and deduplicates them by the
// full (company, count) tuple. Two identical pairs collapse to one row; this
// intentionally also merges two distinct PPO events that happen to share name
// and count, matching the portal's historical export behavior.
//
// Mutex is required because pooled workers add concurrently and Go maps are
// not thread-safe.
type PPOSet struct {
	mu    sync.Mutex
	seen  mapset.Set[models.PPORecord]
	order []models.PPORecord
}

func NewPPOSet() *PPOSet {
	return &PPOSet{
		seen: mapset.NewThreadUnsafeSet[models.PPORecord](),
	}
}

// Add records rec, returning true if it was not already present.
func (s *PPOSet) Add(rec models.PPORecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seen.Add(rec) {
		return false
	}
	s.order = append(s.order, rec)
	return true
}

// Records returns the deduplicated entries in first-seen order.
func (s *PPOSet) Records() []models.PPORecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PPORecord, len(s.order))
	copy(out, s.order)
	return out
}

func (s *PPOSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
