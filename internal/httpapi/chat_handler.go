package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lilypetalstudios/Spark/internal/apierr"
	"github.com/lilypetalstudios/Spark/internal/chat"
	"github.com/lilypetalstudios/Spark/internal/logging"
)

func registerChatRoutes(r chi.Router, deps Deps) {
	r.Route("/v1/chats", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/", listUserChats(deps.Chats, deps.Logger))
		r.Get("/{id}/messages", listMessages(deps.Chats, deps.Logger))
		r.Post("/{id}/messages", sendMessage(deps.Chats, deps.Logger))
		r.Get("/{id}/stream", streamMessages(deps.Chats, deps.Logger))
	})
}

func listUserChats(service chat.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		summaries, err := service.ListUserChats(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to list chats", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to list chats")
			return
		}
		if summaries == nil {
			summaries = []chat.Summary{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"chats": summaries})
	}
}

func listMessages(service chat.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}
		chatID := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		messages, err := service.Messages(ctx, chatID)
		if err != nil {
			if errors.Is(err, chat.ErrMissingChatID) {
				writeError(w, r, apierr.CodeBadRequest, err.Error())
				return
			}
			logRequestError(r.Context(), logger, "failed to list messages", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to list messages")
			return
		}
		if messages == nil {
			messages = []chat.Message{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
	}
}

func sendMessage(service chat.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}
		chatID := chi.URLParam(r, "id")

		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, r, apierr.CodeBadRequest, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		// Empty content is accepted and dropped without a message write.
		if err := service.Send(ctx, chatID, userID, body.Content); err != nil {
			if errors.Is(err, chat.ErrMissingChatID) {
				writeError(w, r, apierr.CodeBadRequest, err.Error())
				return
			}
			logRequestError(r.Context(), logger, "failed to send message", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to send message")
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]bool{"sent": true})
	}
}

func streamMessages(service chat.Service, logger *slog.Logger) http.HandlerFunc {
	upgrader := newUpgrader()
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}
		chatID := chi.URLParam(r, "id")
		streamLog := logging.WithRequestID(r.Context(), logger, middleware.GetReqID(r.Context()))

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to upgrade stream", err, userID)
			return
		}
		defer conn.Close()

		// The connection is hijacked, so the request context (and its
		// middleware timeout) no longer governs the stream's lifetime.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		snapshots, err := service.Subscribe(ctx, chatID)
		if err != nil {
			streamLog.Error("failed to subscribe to chat", "chatId", chatID, "userId", userID, "error", err)
			return
		}

		// Read pump: the only expected inbound traffic is the close frame.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for snapshot := range snapshots {
			if snapshot == nil {
				snapshot = []chat.Message{}
			}
			if err := conn.WriteJSON(map[string]any{"messages": snapshot}); err != nil {
				return
			}
		}
	}
}
