package match

import (
	"context"
	"fmt"

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

func (r *firestoreRepository) ListProfiles(ctx context.Context) ([]Candidate, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	var candidates []Candidate
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var payload struct {
			Username        string `firestore:"username"`
			Bio             string `firestore:"bio"`
			AvatarURL       string `firestore:"avatar"`
			Accomplishments string `firestore:"accomplishments"`
			Strengths       string `firestore:"strengths"`
			Weaknesses      string `firestore:"weaknesses"`
		}
		if err := doc.DataTo(&payload); err != nil {
			return nil, fmt.Errorf("unmarshal candidate: %w", err)
		}
		candidates = append(candidates, Candidate{
			UserID:          doc.Ref.ID,
			Username:        payload.Username,
			Bio:             payload.Bio,
			AvatarURL:       payload.AvatarURL,
			Accomplishments: payload.Accomplishments,
			Strengths:       payload.Strengths,
			Weaknesses:      payload.Weaknesses,
		})
	}
	return candidates, nil
}

func (r *firestoreRepository) GetSwipes(ctx context.Context, userID string) (map[string]string, error) {
	doc, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var payload struct {
		Swipes map[string]string `firestore:"swipes"`
	}
	if err := doc.DataTo(&payload); err != nil {
		return nil, fmt.Errorf("unmarshal swipes: %w", err)
	}
	if payload.Swipes == nil {
		payload.Swipes = map[string]string{}
	}
	return payload.Swipes, nil
}

func (r *firestoreRepository) RecordSwipe(ctx context.Context, swiperID, candidateID string, direction Direction) error {
	// Field-path update touches only this one map entry; repeated identical
	// writes are no-ops in effect.
	_, err := r.client.Collection(usersCollection).Doc(swiperID).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"swipes", candidateID}, Value: string(direction)},
	})
	return err
}
