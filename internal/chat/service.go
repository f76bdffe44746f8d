package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type service struct {
	repo Repository
}

// NewService creates a new chat service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create writes a new chat document for the pair. There is deliberately no
// existence check for a prior chat between the same participants; repeated
// matches produce additional chat documents, matching the stored data.
func (s *service) Create(ctx context.Context, userA, userB string) (*Chat, error) {
	if userA == "" || userB == "" {
		return nil, ErrMissingUserID
	}
	if userA == userB {
		return nil, ErrSameParticipant
	}

	chat := &Chat{
		ID:      uuid.New().String(),
		UserIDs: []string{userA, userB},
	}
	if err := s.repo.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// Send appends a message to the chat. Empty or whitespace-only content is a
// silent no-op rather than an error.
func (s *service) Send(ctx context.Context, chatID, senderID, content string) error {
	if chatID == "" {
		return ErrMissingChatID
	}
	if senderID == "" {
		return ErrMissingSenderID
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}

	return s.repo.AppendMessage(ctx, chatID, &Message{
		SenderID: senderID,
		Content:  content,
	})
}

func (s *service) Messages(ctx context.Context, chatID string) ([]Message, error) {
	if chatID == "" {
		return nil, ErrMissingChatID
	}
	return s.repo.ListMessages(ctx, chatID)
}

func (s *service) Subscribe(ctx context.Context, chatID string) (<-chan []Message, error) {
	if chatID == "" {
		return nil, ErrMissingChatID
	}
	return s.repo.StreamMessages(ctx, chatID)
}

// ListUserChats resolves the other participant of every chat the user belongs
// to. The per-chat profile lookups fan out concurrently and the result is
// assembled only after all of them complete.
func (s *service) ListUserChats(ctx context.Context, userID string) ([]Summary, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	chats, err := s.repo.ListChatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(chats))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range chats {
		g.Go(func() error {
			other, err := s.repo.GetParticipant(ctx, otherParticipant(c, userID))
			if err != nil {
				return err
			}
			summaries[i] = Summary{Chat: c, Other: other}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func otherParticipant(c Chat, userID string) string {
	for _, id := range c.UserIDs {
		if id != userID {
			return id
		}
	}
	return userID
}
