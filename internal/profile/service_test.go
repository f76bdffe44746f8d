package profile

import (
	"context"
	"errors"
	"testing"
)

func newTestService() Service {
	return NewService(NewMemoryRepository())
}

func TestRegister_CreatesAndReturnsProfile(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, "u1", " u1@example.edu ", " studybuddy ")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if created.Username != "studybuddy" || created.Email != "u1@example.edu" {
		t.Fatalf("expected trimmed fields, got %+v", created)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}

	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Username != "studybuddy" {
		t.Fatalf("expected stored profile, got %+v", got)
	}
}

func TestRegister_RejectsTakenUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "u1", "a@x", "studybuddy"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register(ctx, "u2", "b@x", "studybuddy"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "a@x", "name"); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
	if _, err := svc.Register(ctx, "u1", "a@x", "   "); !errors.Is(err, ErrMissingUsername) {
		t.Fatalf("expected ErrMissingUsername, got %v", err)
	}
}

func TestGet_UnknownUserYieldsDefaults(t *testing.T) {
	svc := newTestService()

	got, err := svc.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.UserID != "ghost" || got.Username != "" || got.TotalPoints != 0 {
		t.Fatalf("expected empty defaults, got %+v", got)
	}
}

func TestUpdateDetails_WritesOnlyProvidedFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "u1", "a@x", "name"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	bio := " night owl "
	updated, err := svc.UpdateDetails(ctx, "u1", DetailsUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateDetails returned error: %v", err)
	}
	if updated.Bio != "night owl" {
		t.Fatalf("expected trimmed bio, got %q", updated.Bio)
	}

	strengths := "calculus"
	updated, err = svc.UpdateDetails(ctx, "u1", DetailsUpdate{Strengths: &strengths})
	if err != nil {
		t.Fatalf("UpdateDetails returned error: %v", err)
	}
	if updated.Bio != "night owl" || updated.Strengths != "calculus" {
		t.Fatalf("expected previous fields preserved, got %+v", updated)
	}
}

func TestCheckUsername(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	available, err := svc.CheckUsername(ctx, "fresh")
	if err != nil || !available {
		t.Fatalf("expected fresh name available, got available=%v err=%v", available, err)
	}

	if _, err := svc.Register(ctx, "u1", "a@x", "fresh"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	available, err = svc.CheckUsername(ctx, "fresh")
	if err != nil || available {
		t.Fatalf("expected taken name unavailable, got available=%v err=%v", available, err)
	}

	if _, err := svc.CheckUsername(ctx, "  "); !errors.Is(err, ErrMissingUsername) {
		t.Fatalf("expected ErrMissingUsername, got %v", err)
	}
}

func TestLeaderboard_OrdersByPointsAndLimits(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	seed := map[string]int{"a": 30, "b": 50, "c": 10, "d": 40}
	for id, points := range seed {
		if err := repo.Create(ctx, &Profile{UserID: id, Username: "user-" + id, TotalPoints: points}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	entries, err := svc.Leaderboard(ctx, 3)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(entries))
	}
	want := []string{"b", "d", "a"}
	for i, entry := range entries {
		if entry.UserID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], entry.UserID)
		}
	}

	// A non-positive limit falls back to the default of ten.
	entries, err = svc.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(entries) != len(seed) {
		t.Fatalf("expected all %d entries under the default limit, got %d", len(seed), len(entries))
	}
}
