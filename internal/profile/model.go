package profile

import (
	"context"
	"time"
)

// Profile represents the persisted user document stored in Firestore.
// Swipe decisions live on the same document as a map keyed by candidate id;
// the embedded task list is owned by the tasks package and not decoded here.
type Profile struct {
	UserID          string            `json:"user_id" firestore:"-"`
	Username        string            `json:"username" firestore:"username"`
	Email           string            `json:"email" firestore:"email"`
	Bio             string            `json:"bio" firestore:"bio"`
	Accomplishments string            `json:"accomplishments" firestore:"accomplishments"`
	Strengths       string            `json:"strengths" firestore:"strengths"`
	Weaknesses      string            `json:"weaknesses" firestore:"weaknesses"`
	AvatarURL       string            `json:"avatar_url" firestore:"avatar"`
	TotalPoints     int               `json:"total_points" firestore:"totalPoints"`
	Swipes          map[string]string `json:"-" firestore:"swipes"`
	CreatedAt       time.Time         `json:"created_at,omitempty" firestore:"createdAt"`
	UpdatedAt       time.Time         `json:"updated_at,omitempty" firestore:"updatedAt"`
}

// LeaderboardEntry is an on-demand projection of a profile ranked by cached points.
type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatar_url"`
	TotalPoints int    `json:"total_points"`
}

// DetailsUpdate describes the free-text fields written during onboarding.
// Nil pointers are omitted from the merge write.
type DetailsUpdate struct {
	Bio             *string
	Accomplishments *string
	Strengths       *string
	Weaknesses      *string
}

// Repository defines the interface for profile data access.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	Get(ctx context.Context, userID string) (*Profile, error)
	UpdateDetails(ctx context.Context, userID string, updates DetailsUpdate) error
	SetAvatarURL(ctx context.Context, userID, url string) error
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// Service defines the profile service interface.
type Service interface {
	Register(ctx context.Context, userID, email, username string) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	UpdateDetails(ctx context.Context, userID string, updates DetailsUpdate) (*Profile, error)
	SetAvatar(ctx context.Context, userID, url string) (*Profile, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
