package chat

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(lookup ParticipantLookup) Service {
	return NewService(NewMemoryRepository(lookup))
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "b"); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
	if _, err := svc.Create(ctx, "a", "a"); !errors.Is(err, ErrSameParticipant) {
		t.Fatalf("expected ErrSameParticipant, got %v", err)
	}
}

func TestCreate_AllowsRepeatedPairs(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, "a", "b")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := svc.Create(ctx, "a", "b")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct chat documents for repeated pairs")
	}

	chats, err := svc.ListUserChats(ctx, "a")
	if err != nil {
		t.Fatalf("ListUserChats returned error: %v", err)
	}
	if len(chats) != 2 {
		t.Fatalf("expected both chats listed, got %d", len(chats))
	}
}

func TestSend_BlankContentIsSilentlyDropped(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	chat, err := svc.Create(ctx, "a", "b")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	for _, content := range []string{"", "   ", "\n\t"} {
		if err := svc.Send(ctx, chat.ID, "a", content); err != nil {
			t.Fatalf("blank send must not error, got %v", err)
		}
	}

	messages, err := svc.Messages(ctx, chat.ID)
	if err != nil {
		t.Fatalf("Messages returned error: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no stored messages, got %d", len(messages))
	}
}

func TestSend_PreservesOrder(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	chat, err := svc.Create(ctx, "a", "b")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	contents := []string{"hey", "library at 6?", "works for me"}
	senders := []string{"a", "b", "a"}
	for i := range contents {
		if err := svc.Send(ctx, chat.ID, senders[i], contents[i]); err != nil {
			t.Fatalf("Send returned error: %v", err)
		}
	}

	messages, err := svc.Messages(ctx, chat.ID)
	if err != nil {
		t.Fatalf("Messages returned error: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for i, message := range messages {
		if message.Content != contents[i] || message.SenderID != senders[i] {
			t.Fatalf("message %d out of order: %+v", i, message)
		}
		if message.ID == "" || message.Timestamp.IsZero() {
			t.Fatalf("message %d missing id or timestamp: %+v", i, message)
		}
	}
}

func TestSubscribe_DeliversInitialAndLatestSnapshots(t *testing.T) {
	svc := newTestService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chat, err := svc.Create(ctx, "a", "b")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Send(ctx, chat.ID, "a", "first"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	snapshots, err := svc.Subscribe(ctx, chat.ID)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	initial := waitForSnapshot(t, snapshots)
	if len(initial) != 1 || initial[0].Content != "first" {
		t.Fatalf("expected initial snapshot with existing history, got %+v", initial)
	}

	if err := svc.Send(ctx, chat.ID, "b", "second"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		var snapshot []Message
		select {
		case snapshot = <-snapshots:
		case <-deadline:
			t.Fatal("timed out waiting for updated snapshot")
		}
		if len(snapshot) == 2 {
			if snapshot[0].Content != "first" || snapshot[1].Content != "second" {
				t.Fatalf("snapshot out of order: %+v", snapshot)
			}
			break
		}
	}

	cancel()
	for {
		if _, open := <-snapshots; !open {
			break
		}
	}
}

func TestListUserChats_ResolvesOtherParticipant(t *testing.T) {
	lookup := func(_ context.Context, userID string) (Participant, error) {
		return Participant{UserID: userID, Username: "name-" + userID}, nil
	}
	svc := newTestService(lookup)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "a", "b"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, "c", "a"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	summaries, err := svc.ListUserChats(ctx, "a")
	if err != nil {
		t.Fatalf("ListUserChats returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 chats for a, got %d", len(summaries))
	}
	others := map[string]bool{}
	for _, summary := range summaries {
		if summary.Other.UserID == "a" {
			t.Fatalf("summary resolved the caller instead of the other side: %+v", summary)
		}
		if summary.Other.Username != "name-"+summary.Other.UserID {
			t.Fatalf("participant lookup not applied: %+v", summary.Other)
		}
		others[summary.Other.UserID] = true
	}
	if !others["b"] || !others["c"] {
		t.Fatalf("expected chats with b and c, got %v", others)
	}
}

func TestListUserChats_LookupFailureFailsTheList(t *testing.T) {
	wantErr := errors.New("profile store down")
	lookup := func(context.Context, string) (Participant, error) {
		return Participant{}, wantErr
	}
	svc := newTestService(lookup)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "a", "b"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.ListUserChats(ctx, "a"); !errors.Is(err, wantErr) {
		t.Fatalf("expected lookup error to surface, got %v", err)
	}
}

func waitForSnapshot(t *testing.T, snapshots <-chan []Message) []Message {
	t.Helper()
	select {
	case snapshot := <-snapshots:
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}
