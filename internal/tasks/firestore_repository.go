package tasks

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
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

func (r *firestoreRepository) GetTaskState(ctx context.Context, userID string) ([]Task, int, error) {
	doc, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	var payload struct {
		Tasks       []Task `firestore:"tasks"`
		TotalPoints int    `firestore:"totalPoints"`
	}
	if err := doc.DataTo(&payload); err != nil {
		return nil, 0, fmt.Errorf("unmarshal tasks: %w", err)
	}
	return payload.Tasks, payload.TotalPoints, nil
}

func (r *firestoreRepository) SaveTaskState(ctx context.Context, userID string, tasks []Task, totalPoints int) error {
	if tasks == nil {
		tasks = []Task{}
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Set(ctx, map[string]any{
		"tasks":       tasks,
		"totalPoints": totalPoints,
		"updatedAt":   time.Now().UTC(),
	}, firestore.MergeAll)
	return err
}

func (r *firestoreRepository) GetPoints(ctx context.Context, userID string) (int, error) {
	doc, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var payload struct {
		TotalPoints int `firestore:"totalPoints"`
	}
	if err := doc.DataTo(&payload); err != nil {
		return 0, fmt.Errorf("unmarshal points: %w", err)
	}
	return payload.TotalPoints, nil
}
