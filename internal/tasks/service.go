package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type service struct {
	repo Repository
}

// NewService creates a new task service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID string) ([]Task, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	tasks, _, err := s.repo.GetTaskState(ctx, userID)
	return tasks, err
}

func (s *service) Add(ctx context.Context, userID, title string, deadline time.Time, priority Priority, difficulty Difficulty) (*Task, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingTitle
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	tasks, totalPoints, err := s.repo.GetTaskState(ctx, userID)
	if err != nil {
		return nil, err
	}

	task := Task{
		ID:         uuid.New().String(),
		Title:      title,
		Deadline:   deadline,
		Priority:   priority,
		Difficulty: difficulty,
	}
	tasks = append(tasks, task)

	// New tasks start incomplete; the cached total is written back unchanged.
	if err := s.repo.SaveTaskState(ctx, userID, tasks, totalPoints); err != nil {
		return nil, err
	}
	return &task, nil
}

// Edit replaces the stored fields in place. The cached total is NOT
// recomputed even when the difficulty of an already-completed task changes,
// so the total can drift from the true completed sum. Kept as-is on purpose.
func (s *service) Edit(ctx context.Context, userID, taskID string, edit TaskEdit) (*Task, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	title := strings.TrimSpace(edit.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}
	if !edit.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if !edit.Difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	tasks, totalPoints, err := s.repo.GetTaskState(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := indexOf(tasks, taskID)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	tasks[idx].Title = title
	tasks[idx].Deadline = edit.Deadline
	tasks[idx].Priority = edit.Priority
	tasks[idx].Difficulty = edit.Difficulty

	if err := s.repo.SaveTaskState(ctx, userID, tasks, totalPoints); err != nil {
		return nil, err
	}
	updated := tasks[idx]
	return &updated, nil
}

// Toggle flips completion and adjusts the cached total by the task's point
// value. The list and total go out in a single write; two near-simultaneous
// toggles still race on the in-memory total before that write.
func (s *service) Toggle(ctx context.Context, userID, taskID string) (*Task, int, error) {
	if userID == "" {
		return nil, 0, ErrMissingUserID
	}

	tasks, totalPoints, err := s.repo.GetTaskState(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	idx := indexOf(tasks, taskID)
	if idx < 0 {
		return nil, 0, ErrTaskNotFound
	}

	tasks[idx].IsCompleted = !tasks[idx].IsCompleted
	if tasks[idx].IsCompleted {
		totalPoints += tasks[idx].Difficulty.Points()
	} else {
		totalPoints -= tasks[idx].Difficulty.Points()
	}

	if err := s.repo.SaveTaskState(ctx, userID, tasks, totalPoints); err != nil {
		return nil, 0, err
	}
	toggled := tasks[idx]
	return &toggled, totalPoints, nil
}

// Delete removes the task from the list. The cached total is NOT decremented
// even when the deleted task was completed. Kept as-is on purpose.
func (s *service) Delete(ctx context.Context, userID, taskID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	tasks, totalPoints, err := s.repo.GetTaskState(ctx, userID)
	if err != nil {
		return err
	}

	idx := indexOf(tasks, taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	tasks = append(tasks[:idx], tasks[idx+1:]...)
	return s.repo.SaveTaskState(ctx, userID, tasks, totalPoints)
}

func (s *service) Points(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrMissingUserID
	}
	return s.repo.GetPoints(ctx, userID)
}

func indexOf(tasks []Task, taskID string) int {
	for i, task := range tasks {
		if task.ID == taskID {
			return i
		}
	}
	return -1
}
