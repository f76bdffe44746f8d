package match

import (
	"context"
	"errors"
	"testing"

	"github.com/lilypetalstudios/Spark/internal/chat"
)

type fakeRepo struct {
	listProfilesFn func(context.Context) ([]Candidate, error)
	getSwipesFn    func(context.Context, string) (map[string]string, error)
	recordSwipeFn  func(context.Context, string, string, Direction) error
}

func (f *fakeRepo) ListProfiles(ctx context.Context) ([]Candidate, error) {
	if f.listProfilesFn != nil {
		return f.listProfilesFn(ctx)
	}
	return nil, errors.New("listProfilesFn not provided")
}

func (f *fakeRepo) GetSwipes(ctx context.Context, userID string) (map[string]string, error) {
	if f.getSwipesFn != nil {
		return f.getSwipesFn(ctx, userID)
	}
	return map[string]string{}, nil
}

func (f *fakeRepo) RecordSwipe(ctx context.Context, swiperID, candidateID string, direction Direction) error {
	if f.recordSwipeFn != nil {
		return f.recordSwipeFn(ctx, swiperID, candidateID, direction)
	}
	return nil
}

type fakeChats struct {
	created []string
}

func (f *fakeChats) Create(_ context.Context, userA, userB string) (*chat.Chat, error) {
	f.created = append(f.created, userA+"|"+userB)
	return &chat.Chat{ID: "chat-1", UserIDs: []string{userA, userB}}, nil
}

func TestListCandidates_ExcludesSelfAndSwiped(t *testing.T) {
	repo := &fakeRepo{
		listProfilesFn: func(context.Context) ([]Candidate, error) {
			return []Candidate{
				{UserID: "me"},
				{UserID: "liked"},
				{UserID: "passed"},
				{UserID: "fresh"},
			}, nil
		},
		getSwipesFn: func(_ context.Context, userID string) (map[string]string, error) {
			if userID != "me" {
				t.Fatalf("expected swipes lookup for the caller, got %s", userID)
			}
			return map[string]string{"liked": "right", "passed": "left"}, nil
		},
	}

	svc := NewService(repo, &fakeChats{})
	candidates, err := svc.ListCandidates(context.Background(), "me")
	if err != nil {
		t.Fatalf("ListCandidates returned error: %v", err)
	}

	if len(candidates) != 1 || candidates[0].UserID != "fresh" {
		t.Fatalf("expected only the unswiped stranger, got %+v", candidates)
	}
}

func TestSwipe_IsIdempotent(t *testing.T) {
	recorded := map[string]string{}
	repo := &fakeRepo{
		recordSwipeFn: func(_ context.Context, swiperID, candidateID string, direction Direction) error {
			recorded[candidateID] = string(direction)
			return nil
		},
		getSwipesFn: func(context.Context, string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}

	svc := NewService(repo, &fakeChats{})
	for i := 0; i < 2; i++ {
		if _, err := svc.Swipe(context.Background(), "a", "b", DirectionRight); err != nil {
			t.Fatalf("Swipe returned error: %v", err)
		}
	}

	if len(recorded) != 1 || recorded["b"] != "right" {
		t.Fatalf("expected a single right decision for b, got %v", recorded)
	}
}

func TestSwipe_MutualMatchCreatesOneChat(t *testing.T) {
	repo := &fakeRepo{
		getSwipesFn: func(_ context.Context, userID string) (map[string]string, error) {
			if userID == "b" {
				return map[string]string{"a": "right"}, nil
			}
			return map[string]string{}, nil
		},
	}
	chats := &fakeChats{}

	svc := NewService(repo, chats)
	result, err := svc.Swipe(context.Background(), "a", "b", DirectionRight)
	if err != nil {
		t.Fatalf("Swipe returned error: %v", err)
	}

	if !result.Matched || result.ChatID != "chat-1" {
		t.Fatalf("expected a match with a chat id, got %+v", result)
	}
	if len(chats.created) != 1 {
		t.Fatalf("expected exactly one chat creation, got %d", len(chats.created))
	}
}

func TestSwipe_OneSidedRightCreatesNoChat(t *testing.T) {
	repo := &fakeRepo{
		getSwipesFn: func(context.Context, string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}
	chats := &fakeChats{}

	svc := NewService(repo, chats)
	result, err := svc.Swipe(context.Background(), "a", "b", DirectionRight)
	if err != nil {
		t.Fatalf("Swipe returned error: %v", err)
	}

	if result.Matched || result.ChatID != "" {
		t.Fatalf("expected no match, got %+v", result)
	}
	if len(chats.created) != 0 {
		t.Fatalf("expected no chat creation, got %d", len(chats.created))
	}
}

func TestSwipe_LeftNeverChecksReciprocity(t *testing.T) {
	repo := &fakeRepo{
		getSwipesFn: func(_ context.Context, userID string) (map[string]string, error) {
			t.Fatalf("left swipe must not read the candidate's swipes")
			return nil, nil
		},
	}
	chats := &fakeChats{}

	svc := NewService(repo, chats)
	result, err := svc.Swipe(context.Background(), "a", "b", DirectionLeft)
	if err != nil {
		t.Fatalf("Swipe returned error: %v", err)
	}
	if result.Matched || len(chats.created) != 0 {
		t.Fatalf("left swipe must not match or create chats")
	}
}

func TestSwipe_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeChats{})

	if _, err := svc.Swipe(context.Background(), "a", "b", Direction("up")); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
	if _, err := svc.Swipe(context.Background(), "a", "", DirectionRight); !errors.Is(err, ErrMissingCandidateID) {
		t.Fatalf("expected ErrMissingCandidateID, got %v", err)
	}
	if _, err := svc.Swipe(context.Background(), "a", "a", DirectionRight); !errors.Is(err, ErrSelfSwipe) {
		t.Fatalf("expected ErrSelfSwipe, got %v", err)
	}
	if _, err := svc.Swipe(context.Background(), "", "b", DirectionRight); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}

func TestMemoryRepository_RoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.RecordSwipe(ctx, "a", "b", DirectionRight); err != nil {
		t.Fatalf("RecordSwipe returned error: %v", err)
	}
	if err := repo.RecordSwipe(ctx, "a", "b", DirectionLeft); err != nil {
		t.Fatalf("RecordSwipe returned error: %v", err)
	}

	swipes, err := repo.GetSwipes(ctx, "a")
	if err != nil {
		t.Fatalf("GetSwipes returned error: %v", err)
	}
	if len(swipes) != 1 || swipes["b"] != "left" {
		t.Fatalf("expected last write to win, got %v", swipes)
	}
}

func TestMemoryRepository_ProfileDirectory(t *testing.T) {
	repo := NewMemoryRepository()
	repo.UpsertProfile(Candidate{UserID: "a", Username: "alpha"})
	repo.UpsertProfile(Candidate{UserID: "b", Username: "beta"})
	repo.UpsertProfile(Candidate{UserID: "a", Username: "alpha2"})

	profiles, err := repo.ListProfiles(context.Background())
	if err != nil {
		t.Fatalf("ListProfiles returned error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected upsert to replace, got %d profiles", len(profiles))
	}
}
