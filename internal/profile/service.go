package profile

import (
	"context"
	"strings"
)

const defaultLeaderboardLimit = 10

type service struct {
	repo Repository
}

// NewService creates a new profile service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, userID, email, username string) (*Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingUsername
	}

	// Uniqueness is enforced by this pre-check only, not by a storage
	// constraint; two racing registrations can both pass it.
	taken, err := s.repo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	if err := s.repo.Create(ctx, &Profile{
		UserID:   userID,
		Username: username,
		Email:    strings.TrimSpace(email),
	}); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) UpdateDetails(ctx context.Context, userID string, updates DetailsUpdate) (*Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if err := s.repo.UpdateDetails(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) SetAvatar(ctx context.Context, userID, url string) (*Profile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if err := s.repo.SetAvatarURL(ctx, userID, url); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) CheckUsername(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, ErrMissingUsername
	}
	taken, err := s.repo.UsernameTaken(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	return s.repo.Leaderboard(ctx, limit)
}
