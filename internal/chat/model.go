package chat

import (
	"context"
	"time"
)

// Chat represents a chat document created for a matched pair.
// LastMessage is written empty at creation and never updated afterwards;
// the field is kept because existing documents carry it.
type Chat struct {
	ID          string    `json:"id" firestore:"-"`
	UserIDs     []string  `json:"user_ids" firestore:"userIds"`
	LastMessage string    `json:"last_message" firestore:"lastMessage"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// Message represents a single entry in a chat's append-only message log.
type Message struct {
	ID        string    `json:"id" firestore:"-"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Content   string    `json:"content" firestore:"content"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// Participant is the slice of a profile needed to render a chat list entry.
type Participant struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// Summary pairs a chat with the resolved other participant.
type Summary struct {
	Chat  Chat        `json:"chat"`
	Other Participant `json:"other"`
}

// Repository defines the interface for chat data access.
type Repository interface {
	CreateChat(ctx context.Context, chat *Chat) error
	ListChatsByUser(ctx context.Context, userID string) ([]Chat, error)
	AppendMessage(ctx context.Context, chatID string, message *Message) error
	ListMessages(ctx context.Context, chatID string) ([]Message, error)
	// StreamMessages delivers the complete ordered message list on every
	// change until the context is cancelled, at which point the channel closes.
	StreamMessages(ctx context.Context, chatID string) (<-chan []Message, error)
	GetParticipant(ctx context.Context, userID string) (Participant, error)
}

// Service defines the chat service interface.
type Service interface {
	Create(ctx context.Context, userA, userB string) (*Chat, error)
	Send(ctx context.Context, chatID, senderID, content string) error
	Messages(ctx context.Context, chatID string) ([]Message, error)
	Subscribe(ctx context.Context, chatID string) (<-chan []Message, error)
	ListUserChats(ctx context.Context, userID string) ([]Summary, error)
}
