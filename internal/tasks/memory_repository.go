package tasks

import (
	"context"
	"sync"
)

type taskState struct {
	tasks       []Task
	totalPoints int
}

type memoryRepository struct {
	mu    sync.RWMutex
	store map[string]taskState
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{store: make(map[string]taskState)}
}

func (r *memoryRepository) GetTaskState(_ context.Context, userID string) ([]Task, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.store[userID]
	if !ok {
		return nil, 0, nil
	}
	return append([]Task(nil), state.tasks...), state.totalPoints, nil
}

func (r *memoryRepository) SaveTaskState(_ context.Context, userID string, tasks []Task, totalPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[userID] = taskState{
		tasks:       append([]Task(nil), tasks...),
		totalPoints: totalPoints,
	}
	return nil
}

func (r *memoryRepository) GetPoints(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store[userID].totalPoints, nil
}
