package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

func newMessageID() string {
	return uuid.New().String()
}

// ParticipantLookup resolves a participant profile for the memory repository,
// which does not own the user store.
type ParticipantLookup func(ctx context.Context, userID string) (Participant, error)

type memoryRepository struct {
	mu          sync.RWMutex
	chats       map[string]*Chat
	messages    map[string][]Message
	subscribers map[string][]*subscriber
	lookup      ParticipantLookup
}

// subscriber coalesces snapshot deliveries so a slow consumer only ever
// misses intermediate states, never the latest one.
type subscriber struct {
	mu     sync.Mutex
	latest []Message
	dirty  chan struct{}
}

func (s *subscriber) publish(snapshot []Message) {
	s.mu.Lock()
	s.latest = snapshot
	s.mu.Unlock()
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *subscriber) take() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
// The lookup may be nil, in which case participants resolve to bare user ids.
func NewMemoryRepository(lookup ParticipantLookup) Repository {
	return &memoryRepository{
		chats:       make(map[string]*Chat),
		messages:    make(map[string][]Message),
		subscribers: make(map[string][]*subscriber),
		lookup:      lookup,
	}
}

func (r *memoryRepository) CreateChat(_ context.Context, chat *Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *chat
	stored.LastMessage = ""
	stored.CreatedAt = time.Now().UTC()
	r.chats[chat.ID] = &stored
	return nil
}

func (r *memoryRepository) ListChatsByUser(_ context.Context, userID string) ([]Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chats []Chat
	for _, stored := range r.chats {
		for _, id := range stored.UserIDs {
			if id == userID {
				chats = append(chats, *stored)
				break
			}
		}
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i].CreatedAt.Before(chats[j].CreatedAt) })
	return chats, nil
}

func (r *memoryRepository) AppendMessage(_ context.Context, chatID string, message *Message) error {
	r.mu.Lock()

	stored := *message
	stored.Timestamp = time.Now().UTC()
	if stored.ID == "" {
		stored.ID = newMessageID()
	}
	message.ID = stored.ID
	message.Timestamp = stored.Timestamp
	r.messages[chatID] = append(r.messages[chatID], stored)

	snapshot := r.snapshotLocked(chatID)
	subs := append([]*subscriber(nil), r.subscribers[chatID]...)
	r.mu.Unlock()

	for _, sub := range subs {
		sub.publish(snapshot)
	}
	return nil
}

func (r *memoryRepository) ListMessages(_ context.Context, chatID string) ([]Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked(chatID), nil
}

func (r *memoryRepository) StreamMessages(ctx context.Context, chatID string) (<-chan []Message, error) {
	sub := &subscriber{dirty: make(chan struct{}, 1)}

	r.mu.Lock()
	r.subscribers[chatID] = append(r.subscribers[chatID], sub)
	initial := r.snapshotLocked(chatID)
	r.mu.Unlock()

	sub.publish(initial)

	out := make(chan []Message)
	go func() {
		defer close(out)
		defer r.dropSubscriber(chatID, sub)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.dirty:
				select {
				case out <- sub.take():
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (r *memoryRepository) GetParticipant(ctx context.Context, userID string) (Participant, error) {
	if r.lookup == nil {
		return Participant{UserID: userID}, nil
	}
	return r.lookup(ctx, userID)
}

// snapshotLocked returns a copy of the chat's messages ordered by timestamp.
// Callers must hold at least the read lock.
func (r *memoryRepository) snapshotLocked(chatID string) []Message {
	snapshot := append([]Message(nil), r.messages[chatID]...)
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Timestamp.Before(snapshot[j].Timestamp)
	})
	return snapshot
}

func (r *memoryRepository) dropSubscriber(chatID string, sub *subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subscribers[chatID]
	for i, candidate := range subs {
		if candidate == sub {
			r.subscribers[chatID] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
