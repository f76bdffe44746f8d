package tasks

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService() Service {
	return NewService(NewMemoryRepository())
}

func mustAdd(t *testing.T, svc Service, userID, title string, difficulty Difficulty) *Task {
	t.Helper()
	task, err := svc.Add(context.Background(), userID, title, time.Now().Add(24*time.Hour), PriorityYellow, difficulty)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	return task
}

func TestAdd_DoesNotChangeTotal(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mustAdd(t, svc, "u1", "read chapter 3", DifficultyMedium)

	points, err := svc.Points(ctx, "u1")
	if err != nil {
		t.Fatalf("Points returned error: %v", err)
	}
	if points != 0 {
		t.Fatalf("expected 0 points after add, got %d", points)
	}

	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].IsCompleted {
		t.Fatalf("expected one incomplete task, got %+v", list)
	}
}

func TestToggle_AdjustsTotalBothWays(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	task := mustAdd(t, svc, "u1", "flashcards", DifficultyMedium)

	toggled, total, err := svc.Toggle(ctx, "u1", task.ID)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if !toggled.IsCompleted || total != 10 {
		t.Fatalf("expected completed task worth 10, got completed=%v total=%d", toggled.IsCompleted, total)
	}

	toggled, total, err = svc.Toggle(ctx, "u1", task.ID)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if toggled.IsCompleted || total != 0 {
		t.Fatalf("expected round-trip back to 0, got completed=%v total=%d", toggled.IsCompleted, total)
	}
}

func TestDelete_KeepsEarnedPoints(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	task := mustAdd(t, svc, "u1", "mock exam", DifficultyHard)
	if _, _, err := svc.Toggle(ctx, "u1", task.ID); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	if err := svc.Delete(ctx, "u1", task.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", list)
	}

	points, err := svc.Points(ctx, "u1")
	if err != nil {
		t.Fatalf("Points returned error: %v", err)
	}
	if points != 20 {
		t.Fatalf("deleting a completed task must not take back points, got %d", points)
	}
}

func TestEdit_DoesNotRecomputeTotal(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	task := mustAdd(t, svc, "u1", "outline essay", DifficultyEasy)
	if _, _, err := svc.Toggle(ctx, "u1", task.ID); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	updated, err := svc.Edit(ctx, "u1", task.ID, TaskEdit{
		Title:      "outline essay",
		Deadline:   task.Deadline,
		Priority:   PriorityRed,
		Difficulty: DifficultyHard,
	})
	if err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}
	if updated.Difficulty != DifficultyHard {
		t.Fatalf("expected difficulty to change, got %s", updated.Difficulty)
	}

	points, err := svc.Points(ctx, "u1")
	if err != nil {
		t.Fatalf("Points returned error: %v", err)
	}
	if points != 5 {
		t.Fatalf("edit must leave the cached total at the original value, got %d", points)
	}

	// Un-completing now subtracts at the NEW difficulty, so the total drifts.
	if _, total, err := svc.Toggle(ctx, "u1", task.ID); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	} else if total != -15 {
		t.Fatalf("expected drifted total of -15, got %d", total)
	}
}

func TestTaskScenario_AddCompleteDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	task := mustAdd(t, svc, "u1", "problem set", DifficultyMedium)

	if _, total, err := svc.Toggle(ctx, "u1", task.ID); err != nil || total != 10 {
		t.Fatalf("expected total 10 after completion, got total=%d err=%v", total, err)
	}
	if err := svc.Delete(ctx, "u1", task.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if points, _ := svc.Points(ctx, "u1"); points != 10 {
		t.Fatalf("expected total to stay at 10, got %d", points)
	}
}

func TestValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	deadline := time.Now()

	if _, err := svc.Add(ctx, "", "x", deadline, PriorityGreen, DifficultyEasy); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "   ", deadline, PriorityGreen, DifficultyEasy); !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "x", deadline, Priority("purple"), DifficultyEasy); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "x", deadline, PriorityGreen, Difficulty("brutal")); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
	if _, _, err := svc.Toggle(ctx, "u1", "nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", "nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestPointValues(t *testing.T) {
	cases := map[Difficulty]int{
		DifficultyEasy:   5,
		DifficultyMedium: 10,
		DifficultyHard:   20,
	}
	for difficulty, want := range cases {
		if got := difficulty.Points(); got != want {
			t.Errorf("%s: expected %d points, got %d", difficulty, want, got)
		}
	}
}
