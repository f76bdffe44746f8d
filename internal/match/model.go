package match

import (
	"context"

	"github.com/lilypetalstudios/Spark/internal/chat"
)

// Direction is a recorded swipe decision.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Valid reports whether the direction is one of the two known decisions.
func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Candidate is the profile card shown in the swipe deck.
type Candidate struct {
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	AvatarURL       string `json:"avatar_url"`
	Accomplishments string `json:"accomplishments"`
	Strengths       string `json:"strengths"`
	Weaknesses      string `json:"weaknesses"`
}

// SwipeResult reports what a swipe produced. ChatID is set only when the
// swipe completed a mutual match and a chat was created.
type SwipeResult struct {
	Direction Direction `json:"direction"`
	Matched   bool      `json:"matched"`
	ChatID    string    `json:"chat_id,omitempty"`
}

// Repository defines the interface for match data access.
type Repository interface {
	// ListProfiles returns every profile in the directory, in store order.
	ListProfiles(ctx context.Context) ([]Candidate, error)
	// GetSwipes returns the swipe map recorded on the user's document.
	// A missing document yields an empty map.
	GetSwipes(ctx context.Context, userID string) (map[string]string, error)
	// RecordSwipe merge-writes a single swipes.<candidateID> entry, leaving
	// the rest of the document untouched. Last write wins.
	RecordSwipe(ctx context.Context, swiperID, candidateID string, direction Direction) error
}

// ChatCreator is the slice of the chat service the match engine needs.
type ChatCreator interface {
	Create(ctx context.Context, userA, userB string) (*chat.Chat, error)
}

// Service defines the match engine interface.
type Service interface {
	ListCandidates(ctx context.Context, userID string) ([]Candidate, error)
	Swipe(ctx context.Context, swiperID, candidateID string, direction Direction) (*SwipeResult, error)
}
