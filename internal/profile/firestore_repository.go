package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Create(ctx context.Context, profile *Profile) error {
	now := time.Now().UTC()
	_, err := r.client.Collection(usersCollection).Doc(profile.UserID).Create(ctx, map[string]any{
		"username":    profile.Username,
		"email":       profile.Email,
		"totalPoints": 0,
		"createdAt":   now,
		"updatedAt":   now,
	})
	if status.Code(err) == codes.AlreadyExists {
		return ErrProfileExists
	}
	return err
}

func (r *firestoreRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return defaultProfile(userID), nil
	}
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	profile.UserID = userID
	if profile.Swipes == nil {
		profile.Swipes = map[string]string{}
	}
	return &profile, nil
}

func (r *firestoreRepository) UpdateDetails(ctx context.Context, userID string, updates DetailsUpdate) error {
	data := map[string]any{
		"updatedAt": time.Now().UTC(),
	}
	if updates.Bio != nil {
		data["bio"] = strings.TrimSpace(*updates.Bio)
	}
	if updates.Accomplishments != nil {
		data["accomplishments"] = strings.TrimSpace(*updates.Accomplishments)
	}
	if updates.Strengths != nil {
		data["strengths"] = strings.TrimSpace(*updates.Strengths)
	}
	if updates.Weaknesses != nil {
		data["weaknesses"] = strings.TrimSpace(*updates.Weaknesses)
	}

	_, err := r.client.Collection(usersCollection).Doc(userID).Set(ctx, data, firestore.MergeAll)
	return err
}

func (r *firestoreRepository) SetAvatarURL(ctx context.Context, userID, url string) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Set(ctx, map[string]any{
		"avatar":    url,
		"updatedAt": time.Now().UTC(),
	}, firestore.MergeAll)
	return err
}

func (r *firestoreRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	iter := r.client.Collection(usersCollection).
		Where("username", "==", username).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *firestoreRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	iter := r.client.Collection(usersCollection).
		OrderBy("totalPoints", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var entries []LeaderboardEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var profile Profile
		if err := doc.DataTo(&profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		entries = append(entries, LeaderboardEntry{
			UserID:      doc.Ref.ID,
			Username:    profile.Username,
			AvatarURL:   profile.AvatarURL,
			TotalPoints: profile.TotalPoints,
		})
	}
	return entries, nil
}

func defaultProfile(userID string) *Profile {
	return &Profile{
		UserID: userID,
		Swipes: map[string]string{},
	}
}
