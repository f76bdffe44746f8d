package httpapi

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/lilypetalstudios/Spark/internal/chat"
	"github.com/lilypetalstudios/Spark/internal/match"
	"github.com/lilypetalstudios/Spark/internal/profile"
	"github.com/lilypetalstudios/Spark/internal/tasks"
)

// AvatarStore uploads a profile image blob and returns its public URL.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, userID string, data io.Reader, contentType string) (string, error)
}

// Deps bundles the services the HTTP layer exposes.
type Deps struct {
	Logger   *slog.Logger
	Profiles profile.Service
	Match    match.Service
	Chats    chat.Service
	Tasks    tasks.Service
	Avatars  AvatarStore

	// LeaderboardLimit is the row count served when the request does not
	// specify one. Zero falls back to the service default.
	LeaderboardLimit int
}

// RegisterRoutes registers all Spark routes
func RegisterRoutes(r chi.Router, deps Deps) {
	registerProfileRoutes(r, deps)
	registerMatchRoutes(r, deps)
	registerChatRoutes(r, deps)
	registerTaskRoutes(r, deps)
}
