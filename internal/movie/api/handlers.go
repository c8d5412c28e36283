// Package api exposes the aggregation gateway over HTTP on /v1/movies.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"moviehub/internal/domain"
	"moviehub/internal/movie/clients"
)

// MovieGetter is satisfied by *gateway.Service.
type MovieGetter interface {
	GetMovie(ctx context.Context, movieID string) (*domain.Movie, error)
}

// HealthCheck checks one upstream dependency.
type HealthCheck interface {
	Name() string
	Check(ctx context.Context) error
}

// MovieHandler serves the aggregated movie view and the gateway's health
// endpoint.
type MovieHandler struct {
	movies       MovieGetter
	checks       []HealthCheck
	checkTimeout time.Duration
	logger       *slog.Logger
}

func NewMovieHandler(movies MovieGetter, logger *slog.Logger, checks ...HealthCheck) *MovieHandler {
	return &MovieHandler{
		movies:       movies,
		checks:       checks,
		checkTimeout: 2 * time.Second,
		logger:       logger,
	}
}

func (h *MovieHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
	}
}

func (h *MovieHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// GetMovie handles GET /v1/movies/{id}.
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["id"]

	movie, err := h.movies.GetMovie(ctx, movieID)
	if err != nil {
		status := clients.StatusCode(err)
		h.logger.ErrorContext(ctx, "Failed to get movie", slog.String("movie_id", movieID), slog.Int("status", status), slog.String("error", err.Error()))
		h.respondError(w, status, clients.Message(err))
		return
	}

	h.logger.InfoContext(ctx, "Movie retrieved successfully", slog.String("movie_id", movieID), slog.Int("reviews", len(movie.ReviewList)))
	h.respondJSON(w, r, http.StatusOK, movie)
}

// Health handles GET /health. It answers 503 as soon as one upstream check fails.
func (h *MovieHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.checkTimeout)
	defer cancel()

	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			h.logger.WarnContext(ctx, "Upstream not ready", slog.String("upstream", c.Name()), slog.String("error", err.Error()))
			h.respondError(w, http.StatusServiceUnavailable, c.Name()+" is not serving")
			return
		}
	}
	h.respondError(w, http.StatusOK, "OK")
}
