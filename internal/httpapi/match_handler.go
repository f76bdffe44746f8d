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
	"github.com/lilypetalstudios/Spark/internal/match"
)

func registerMatchRoutes(r chi.Router, deps Deps) {
	r.Route("/v1/matches", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/candidates", listCandidates(deps.Match, deps.Logger))
		r.Post("/swipes", recordSwipe(deps.Match, deps.Logger))
	})
}

func listCandidates(service match.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		candidates, err := service.ListCandidates(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to list candidates", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to list candidates")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
	}
}

func recordSwipe(service match.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		var body struct {
			CandidateID string `json:"candidate_id"`
			Direction   string `json:"direction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, r, apierr.CodeBadRequest, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := service.Swipe(ctx, userID, body.CandidateID, match.Direction(body.Direction))
		if err != nil {
			switch {
			case errors.Is(err, match.ErrMissingCandidateID),
				errors.Is(err, match.ErrInvalidDirection),
				errors.Is(err, match.ErrSelfSwipe):
				writeError(w, r, apierr.CodeBadRequest, err.Error())
			default:
				logRequestError(r.Context(), logger, "failed to record swipe", err, userID)
				writeError(w, r, apierr.CodeInternal, "failed to record swipe")
			}
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
