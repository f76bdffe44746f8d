package match

import (
	"context"
	"fmt"
)

type service struct {
	repo  Repository
	chats ChatCreator
}

// NewService creates a new match service
func NewService(repo Repository, chats ChatCreator) Service {
	return &service{repo: repo, chats: chats}
}

// ListCandidates returns every profile except the caller's own and those the
// caller has already swiped on, in whatever order the store returns them.
// The list is recomputed from scratch on every call; there is no pagination.
func (s *service) ListCandidates(ctx context.Context, userID string) ([]Candidate, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	swipes, err := s.repo.GetSwipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(profiles))
	for _, candidate := range profiles {
		if candidate.UserID == userID {
			continue
		}
		if _, swiped := swipes[candidate.UserID]; swiped {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// Swipe records the decision and, on a right swipe, checks the candidate's
// document for a reciprocal right swipe. The check is a plain read after a
// plain write with no transaction, so a match surfaces only on the
// second-to-swipe party's action; the first party's earlier right swipe is
// never re-examined from their side.
func (s *service) Swipe(ctx context.Context, swiperID, candidateID string, direction Direction) (*SwipeResult, error) {
	if swiperID == "" {
		return nil, ErrMissingUserID
	}
	if candidateID == "" {
		return nil, ErrMissingCandidateID
	}
	if swiperID == candidateID {
		return nil, ErrSelfSwipe
	}
	if !direction.Valid() {
		return nil, ErrInvalidDirection
	}

	if err := s.repo.RecordSwipe(ctx, swiperID, candidateID, direction); err != nil {
		return nil, fmt.Errorf("record swipe: %w", err)
	}

	result := &SwipeResult{Direction: direction}
	if direction != DirectionRight {
		return result, nil
	}

	theirSwipes, err := s.repo.GetSwipes(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("check reciprocal swipe: %w", err)
	}
	if theirSwipes[swiperID] != string(DirectionRight) {
		return result, nil
	}

	created, err := s.chats.Create(ctx, swiperID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("create chat for match: %w", err)
	}
	result.Matched = true
	result.ChatID = created.ID
	return result, nil
}
