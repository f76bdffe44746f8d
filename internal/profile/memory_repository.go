package profile

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Profile
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{store: make(map[string]*Profile)}
}

func (r *memoryRepository) Create(_ context.Context, profile *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[profile.UserID]; exists {
		return ErrProfileExists
	}

	now := time.Now().UTC()
	stored := *profile
	stored.Swipes = map[string]string{}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.store[profile.UserID] = &stored
	return nil
}

func (r *memoryRepository) Get(_ context.Context, userID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.store[userID]
	if !ok {
		return defaultProfile(userID), nil
	}

	copied := *stored
	copied.Swipes = copySwipes(stored.Swipes)
	return &copied, nil
}

func (r *memoryRepository) UpdateDetails(_ context.Context, userID string, updates DetailsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.ensure(userID)
	if updates.Bio != nil {
		stored.Bio = strings.TrimSpace(*updates.Bio)
	}
	if updates.Accomplishments != nil {
		stored.Accomplishments = strings.TrimSpace(*updates.Accomplishments)
	}
	if updates.Strengths != nil {
		stored.Strengths = strings.TrimSpace(*updates.Strengths)
	}
	if updates.Weaknesses != nil {
		stored.Weaknesses = strings.TrimSpace(*updates.Weaknesses)
	}
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryRepository) SetAvatarURL(_ context.Context, userID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.ensure(userID)
	stored.AvatarURL = url
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryRepository) UsernameTaken(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.store {
		if stored.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) Leaderboard(_ context.Context, limit int) ([]LeaderboardEntry, error) {
	r.mu.RLock()
	entries := make([]LeaderboardEntry, 0, len(r.store))
	for id, stored := range r.store {
		entries = append(entries, LeaderboardEntry{
			UserID:      id,
			Username:    stored.Username,
			AvatarURL:   stored.AvatarURL,
			TotalPoints: stored.TotalPoints,
		})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ensure returns the stored profile for the user, creating an empty one when absent.
// Callers must hold the write lock.
func (r *memoryRepository) ensure(userID string) *Profile {
	stored, ok := r.store[userID]
	if !ok {
		stored = defaultProfile(userID)
		stored.CreatedAt = time.Now().UTC()
		r.store[userID] = stored
	}
	return stored
}

func copySwipes(swipes map[string]string) map[string]string {
	copied := make(map[string]string, len(swipes))
	for k, v := range swipes {
		copied[k] = v
	}
	return copied
}
