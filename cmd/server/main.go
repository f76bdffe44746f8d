package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/lilypetalstudios/Spark/internal/auth"
	"github.com/lilypetalstudios/Spark/internal/chat"
	"github.com/lilypetalstudios/Spark/internal/config"
	"github.com/lilypetalstudios/Spark/internal/httpapi"
	"github.com/lilypetalstudios/Spark/internal/logging"
	"github.com/lilypetalstudios/Spark/internal/match"
	"github.com/lilypetalstudios/Spark/internal/profile"
	"github.com/lilypetalstudios/Spark/internal/server"
	"github.com/lilypetalstudios/Spark/internal/storage"
	"github.com/lilypetalstudios/Spark/internal/tasks"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger("spark-api")

	var (
		profileRepo profile.Repository
		matchRepo   match.Repository
		chatRepo    chat.Repository
		tasksRepo   tasks.Repository
		avatars     httpapi.AvatarStore
	)

	switch cfg.DataStore {
	case "memory":
		logger.Info("using in-memory datastore")
		profileRepo = profile.NewMemoryRepository()
		matchRepo = match.NewMemoryRepository()
		tasksRepo = tasks.NewMemoryRepository()
		chatRepo = chat.NewMemoryRepository(func(ctx context.Context, userID string) (chat.Participant, error) {
			p, err := profileRepo.Get(ctx, userID)
			if err != nil {
				return chat.Participant{}, err
			}
			return chat.Participant{UserID: userID, Username: p.Username, AvatarURL: p.AvatarURL}, nil
		})
	default:
		if cfg.Firestore.EmulatorHost != "" {
			logger.Info("using firestore emulator", "host", cfg.Firestore.EmulatorHost)
		}
		client, err := firestore.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			panic(fmt.Errorf("firestore client: %w", err))
		}
		defer client.Close()

		profileRepo = profile.NewFirestoreRepository(client)
		matchRepo = match.NewFirestoreRepository(client)
		chatRepo = chat.NewFirestoreRepository(client)
		tasksRepo = tasks.NewFirestoreRepository(client)

		store, err := storage.NewService(ctx, cfg.Storage.AvatarBucket)
		if err != nil {
			logger.Warn("avatar storage unavailable, uploads disabled", "error", err)
		} else {
			avatars = store
		}
	}

	profileService := profile.NewService(profileRepo)
	chatService := chat.NewService(chatRepo)
	matchService := match.NewService(matchRepo, chatService)
	tasksService := tasks.NewService(tasksRepo)

	verifier, err := auth.NewVerifier(auth.Config{
		Mode:     auth.Mode(cfg.Auth.Mode),
		JWKSURL:  cfg.Auth.JWKSURL,
		Audience: cfg.Auth.Audience,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		panic(fmt.Errorf("auth verifier error: %w", err))
	}

	router := server.NewRouter("spark-api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))

			httpapi.RegisterRoutes(r, httpapi.Deps{
				Logger:   logger,
				Profiles: profileService,
				Match:    matchService,
				Chats:    chatService,
				Tasks:    tasksService,
				Avatars:  avatars,

				LeaderboardLimit: cfg.Leaderboard.Limit,
			})
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
