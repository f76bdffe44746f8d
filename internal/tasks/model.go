package tasks

import (
	"context"
	"time"
)

// Difficulty determines how many points a task is worth once completed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether the difficulty is one of the known levels.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Points returns the fixed point value for the difficulty.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyMedium:
		return 10
	case DifficultyHard:
		return 20
	default:
		return 0
	}
}

// Priority is a severity color tag on a task.
type Priority string

const (
	PriorityGreen  Priority = "green"
	PriorityYellow Priority = "yellow"
	PriorityRed    Priority = "red"
)

// Valid reports whether the priority is one of the known tags.
func (p Priority) Valid() bool {
	return p == PriorityGreen || p == PriorityYellow || p == PriorityRed
}

// Task is a single entry in a user's task list, persisted as an element of
// the embedded array on the user document.
type Task struct {
	ID          string     `json:"id" firestore:"id"`
	Title       string     `json:"title" firestore:"title"`
	Deadline    time.Time  `json:"deadline" firestore:"deadline"`
	Priority    Priority   `json:"priority" firestore:"priority"`
	Difficulty  Difficulty `json:"difficulty" firestore:"difficulty"`
	IsCompleted bool       `json:"is_completed" firestore:"isCompleted"`
}

// TaskEdit carries the replacement fields for an edit; all fields are written.
type TaskEdit struct {
	Title      string
	Deadline   time.Time
	Priority   Priority
	Difficulty Difficulty
}

// Repository defines the interface for task data access. The full task list
// plus the cached running total are rewritten on every mutation; there is no
// per-task patch.
type Repository interface {
	GetTaskState(ctx context.Context, userID string) ([]Task, int, error)
	SaveTaskState(ctx context.Context, userID string, tasks []Task, totalPoints int) error
	// GetPoints is a one-shot read of the cached total; it never recomputes
	// from the task list.
	GetPoints(ctx context.Context, userID string) (int, error)
}

// Service defines the task ledger interface.
type Service interface {
	List(ctx context.Context, userID string) ([]Task, error)
	Add(ctx context.Context, userID, title string, deadline time.Time, priority Priority, difficulty Difficulty) (*Task, error)
	Edit(ctx context.Context, userID, taskID string, edit TaskEdit) (*Task, error)
	Toggle(ctx context.Context, userID, taskID string) (*Task, int, error)
	Delete(ctx context.Context, userID, taskID string) error
	Points(ctx context.Context, userID string) (int, error)
}
