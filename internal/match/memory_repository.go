package match

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]Candidate
	swipes   map[string]map[string]string
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() *memoryRepository {
	return &memoryRepository{
		profiles: make(map[string]Candidate),
		swipes:   make(map[string]map[string]string),
	}
}

// UpsertProfile seeds or replaces a candidate profile in the directory.
func (r *memoryRepository) UpsertProfile(candidate Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[candidate.UserID] = candidate
}

func (r *memoryRepository) ListProfiles(_ context.Context) ([]Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := make([]Candidate, 0, len(r.profiles))
	for _, candidate := range r.profiles {
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func (r *memoryRepository) GetSwipes(_ context.Context, userID string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recorded := r.swipes[userID]
	swipes := make(map[string]string, len(recorded))
	for k, v := range recorded {
		swipes[k] = v
	}
	return swipes, nil
}

func (r *memoryRepository) RecordSwipe(_ context.Context, swiperID, candidateID string, direction Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.swipes[swiperID] == nil {
		r.swipes[swiperID] = make(map[string]string)
	}
	r.swipes[swiperID][candidateID] = string(direction)
	return nil
}
