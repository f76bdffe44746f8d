package chat

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	chatsCollection    = "chats"
	messagesCollection = "messages"
	usersCollection    = "users"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) CreateChat(ctx context.Context, chat *Chat) error {
	_, err := r.client.Collection(chatsCollection).Doc(chat.ID).Set(ctx, map[string]any{
		"userIds":     chat.UserIDs,
		"lastMessage": "",
		"createdAt":   firestore.ServerTimestamp,
	})
	return err
}

func (r *firestoreRepository) ListChatsByUser(ctx context.Context, userID string) ([]Chat, error) {
	iter := r.client.Collection(chatsCollection).
		Where("userIds", "array-contains", userID).
		Documents(ctx)
	defer iter.Stop()

	var chats []Chat
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var chat Chat
		if err := doc.DataTo(&chat); err != nil {
			return nil, fmt.Errorf("unmarshal chat: %w", err)
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, chat)
	}
	return chats, nil
}

func (r *firestoreRepository) AppendMessage(ctx context.Context, chatID string, message *Message) error {
	ref := r.messages(chatID).NewDoc()
	message.ID = ref.ID
	_, err := ref.Set(ctx, map[string]any{
		"senderId": message.SenderID,
		"content":  message.Content,
		// Server-assigned on every path; the store orders the log.
		"timestamp": firestore.ServerTimestamp,
	})
	return err
}

func (r *firestoreRepository) ListMessages(ctx context.Context, chatID string) ([]Message, error) {
	iter := r.messages(chatID).
		OrderBy("timestamp", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	return decodeMessages(iter)
}

func (r *firestoreRepository) StreamMessages(ctx context.Context, chatID string) (<-chan []Message, error) {
	snapshots := r.messages(chatID).
		OrderBy("timestamp", firestore.Asc).
		Snapshots(ctx)

	out := make(chan []Message)
	go func() {
		defer close(out)
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				return
			}
			messages, err := decodeMessages(snap.Documents)
			if err != nil {
				continue
			}
			select {
			case out <- messages:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (r *firestoreRepository) GetParticipant(ctx context.Context, userID string) (Participant, error) {
	doc, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Participant{UserID: userID}, nil
	}
	if err != nil {
		return Participant{}, err
	}

	var payload struct {
		Username  string `firestore:"username"`
		AvatarURL string `firestore:"avatar"`
	}
	if err := doc.DataTo(&payload); err != nil {
		return Participant{}, fmt.Errorf("unmarshal participant: %w", err)
	}
	return Participant{UserID: userID, Username: payload.Username, AvatarURL: payload.AvatarURL}, nil
}

func (r *firestoreRepository) messages(chatID string) *firestore.CollectionRef {
	return r.client.Collection(chatsCollection).Doc(chatID).Collection(messagesCollection)
}

func decodeMessages(iter *firestore.DocumentIterator) ([]Message, error) {
	var messages []Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var message Message
		if err := doc.DataTo(&message); err != nil {
			return nil, fmt.Errorf("unmarshal message: %w", err)
		}
		message.ID = doc.Ref.ID
		messages = append(messages, message)
	}
	return messages, nil
}
