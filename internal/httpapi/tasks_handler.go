package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lilypetalstudios/Spark/internal/apierr"
	"github.com/lilypetalstudios/Spark/internal/tasks"
)

const deadlineLayout = "2006-01-02"

func registerTaskRoutes(r chi.Router, deps Deps) {
	r.Route("/v1/tasks", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/", listTasks(deps.Tasks, deps.Logger))
		r.Post("/", addTask(deps.Tasks, deps.Logger))
		r.Get("/points", getPoints(deps.Tasks, deps.Logger))
		r.Patch("/{id}", editTask(deps.Tasks, deps.Logger))
		r.Delete("/{id}", deleteTask(deps.Tasks, deps.Logger))
		r.Post("/{id}/toggle", toggleTask(deps.Tasks, deps.Logger))
	})
}

type taskPayload struct {
	Title      string `json:"title"`
	Deadline   string `json:"deadline"`
	Priority   string `json:"priority"`
	Difficulty string `json:"difficulty"`
}

func (p taskPayload) parseDeadline() (time.Time, error) {
	return time.Parse(deadlineLayout, p.Deadline)
}

func listTasks(service tasks.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		list, err := service.List(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to list tasks", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to list tasks")
			return
		}
		if list == nil {
			list = []tasks.Task{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"tasks": list})
	}
}

func addTask(service tasks.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		var body taskPayload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, r, apierr.CodeBadRequest, "invalid request body")
			return
		}
		deadline, err := body.parseDeadline()
		if err != nil {
			writeError(w, r, apierr.CodeBadRequest, "deadline must be YYYY-MM-DD")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		created, err := service.Add(ctx, userID, body.Title, deadline, tasks.Priority(body.Priority), tasks.Difficulty(body.Difficulty))
		if err != nil {
			writeTaskError(w, r, logger, "failed to add task", err, userID)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func editTask(service tasks.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}
		taskID := chi.URLParam(r, "id")

		var body taskPayload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, r, apierr.CodeBadRequest, "invalid request body")
			return
		}
		deadline, err := body.parseDeadline()
		if err != nil {
			writeError(w, r, apierr.CodeBadRequest, "deadline must be YYYY-MM-DD")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		updated, err := service.Edit(ctx, userID, taskID, tasks.TaskEdit{
			Title:      body.Title,
			Deadline:   deadline,
			Priority:   tasks.Priority(body.Priority),
			Difficulty: tasks.Difficulty(body.Difficulty),
		})
		if err != nil {
			writeTaskError(w, r, logger, "failed to edit task", err, userID)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func toggleTask(service tasks.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}
		taskID := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		toggled, totalPoints, err := service.Toggle(ctx, userID, taskID)
		if err != nil {
			writeTaskError(w, r, logger, "failed to toggle task", err, userID)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"task": toggled, "total_points": totalPoints})
	}
}

func deleteTask(service tasks.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}
		taskID := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		if err := service.Delete(ctx, userID, taskID); err != nil {
			writeTaskError(w, r, logger, "failed to delete task", err, userID)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getPoints(service tasks.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		if userID == "" {
			writeError(w, r, apierr.CodeUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		totalPoints, err := service.Points(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load points", err, userID)
			writeError(w, r, apierr.CodeInternal, "failed to load points")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"total_points": totalPoints})
	}
}

func writeTaskError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, message string, err error, userID string) {
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		writeError(w, r, apierr.CodeNotFound, err.Error())
	case errors.Is(err, tasks.ErrMissingTitle),
		errors.Is(err, tasks.ErrInvalidPriority),
		errors.Is(err, tasks.ErrInvalidDifficulty):
		writeError(w, r, apierr.CodeBadRequest, err.Error())
	default:
		logRequestError(r.Context(), logger, message, err, userID)
		writeError(w, r, apierr.CodeInternal, message)
	}
}
