package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lilypetalstudios/Spark/internal/apierr"
	"github.com/lilypetalstudios/Spark/internal/profile"
)

const maxAvatarBytes = 5 << 20 // 5MB

func registerProfileRoutes(r chi.Router, deps Deps) {
	r.Route("/v1/profiles", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Post("/", registerProfile(deps.Profiles, deps.Logger))
		r.Get("/me", getProfile(deps.Profiles, deps.Logger))
		r.Patch("/me", updateProfileDetails(deps.Profiles, deps.Logger))
		r.Post("/me/avatar", uploadAvatar(deps.Profiles, deps.Avatars, deps.Logger))
		r.Get("/username-check", checkUsername(deps.Profiles, deps.Logger))
	})

	r.Get("/v1/leaderboard", getLeaderboard(deps.Profiles, deps.LeaderboardLimit, deps.Logger))
}

func registerProfile(service profile.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		var body struct {
			Email    string `json:"email"`
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, r, apierr.CodeBadRequest, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		created, err := service.Register(ctx, userID, body.Email, body.Username)
		if err != nil {
			switch {
			case errors.Is(err, profile.ErrUsernameTaken), errors.Is(err, profile.ErrProfileExists):
				writeError(w, r, apierr.CodeConflict, err.Error())
			case errors.Is(err, profile.ErrMissingUsername):
				writeError(w, r, apierr.CodeBadRequest, err.Error())
			default:
				logRequestError(r.Context(), logger, "failed to register profile", err, userID)
				writeError(w, r, apierr.CodeInternal, "failed to register profile")
			}
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getProfile(service profile.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		loaded, err := service.Get(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load profile", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to load profile")
			return
		}
		writeJSON(w, http.StatusOK, loaded)
	}
}

func updateProfileDetails(service profile.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		var body struct {
			Bio             *string `json:"bio"`
			Accomplishments *string `json:"accomplishments"`
			Strengths       *string `json:"strengths"`
			Weaknesses      *string `json:"weaknesses"`
		}
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&body); err != nil {
			writeError(w, r, apierr.CodeBadRequest, "invalid request body")
			return
		}
		if body.Bio == nil && body.Accomplishments == nil && body.Strengths == nil && body.Weaknesses == nil {
			writeError(w, r, apierr.CodeBadRequest, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		updated, err := service.UpdateDetails(ctx, userID, profile.DetailsUpdate{
			Bio:             body.Bio,
			Accomplishments: body.Accomplishments,
			Strengths:       body.Strengths,
			Weaknesses:      body.Weaknesses,
		})
		if err != nil {
			logRequestError(r.Context(), logger, "failed to update profile", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to update profile")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func uploadAvatar(service profile.Service, avatars AvatarStore, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}
		if avatars == nil {
			writeError(w, r, apierr.CodeInternal, "avatar storage is not configured")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
		defer r.Body.Close()

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		url, err := avatars.UploadAvatar(ctx, userID, r.Body, r.Header.Get("Content-Type"))
		if err != nil {
			logRequestError(r.Context(), logger, "failed to upload avatar", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to upload avatar")
			return
		}

		updated, err := service.SetAvatar(ctx, userID, url)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to save avatar url", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to save avatar")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func checkUsername(service profile.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		available, err := service.CheckUsername(ctx, username)
		if err != nil {
			if errors.Is(err, profile.ErrMissingUsername) {
				writeError(w, r, apierr.CodeBadRequest, err.Error())
				return
			}
			logRequestError(r.Context(), logger, "failed to check username", err, "")
			writeError(w, r, apierr.CodeInternal, "failed to check username")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"available": available})
	}
}

func getLeaderboard(service profile.Service, defaultLimit int, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, r, apierr.CodeBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		entries, err := service.Leaderboard(ctx, limit)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load leaderboard", err, "")
			writeError(w, r, apierr.CodeInternal, "failed to load leaderboard")
			return
		}
		if entries == nil {
			entries = []profile.LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	}
}
