// Package api exposes the MovieInfo store over HTTP on /v1/movieinfos.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"moviehub/internal/domain"
	"moviehub/internal/movieinfo/store"
	"moviehub/internal/validation"
)

// MovieInfoHandler holds the dependencies of the MovieInfo HTTP handlers.
type MovieInfoHandler struct {
	store     store.MovieInfoStore
	logger    *slog.Logger
	validator *validation.Validator
}

// NewMovieInfoHandler creates a MovieInfoHandler.
func NewMovieInfoHandler(s store.MovieInfoStore, l *slog.Logger, v *validation.Validator) *MovieInfoHandler {
	return &MovieInfoHandler{
		store:     s,
		logger:    l,
		validator: v,
	}
}

func (h *MovieInfoHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

// respondError writes message as a plain-text body.
func (h *MovieInfoHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// decodeAndValidate reads a MovieInfo body. It writes the 400 response itself and reports false on failure.
func (h *MovieInfoHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (domain.MovieInfo, bool) {
	ctx := r.Context()
	var info domain.MovieInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode movie info request body", slog.String("error", err.Error()))
		h.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return info, false
	}
	if err := h.validator.Struct(ctx, info, domain.MovieInfoMessages); err != nil {
		h.logger.ErrorContext(ctx, "Movie info validation failed", slog.String("error", err.Error()))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return info, false
	}
	return info, true
}

// CreateMovieInfo handles POST /v1/movieinfos.
func (h *MovieInfoHandler) CreateMovieInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer r.Body.Close()
	h.logger.InfoContext(ctx, "HTTP CreateMovieInfo request received", slog.String("path", r.URL.Path))

	info, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	if err := h.store.Create(ctx, &info); err != nil {
		h.logger.ErrorContext(ctx, "Failed to create movie info in store", slog.String("error", err.Error()))
		if errors.Is(err, store.ErrMovieInfoAlreadyExists) {
			h.respondError(w, http.StatusConflict, "MovieInfo with this id already exists")
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to create movie info")
		}
		return
	}
	h.respondJSON(w, r, http.StatusCreated, info)
}

// GetMovieInfos handles GET /v1/movieinfos. year wins over name when both are given.
func (h *MovieInfoHandler) GetMovieInfos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	h.logger.InfoContext(ctx, "GetMovieInfos endpoint hit", slog.String("query", query.Encode()))

	var (
		infos []*domain.MovieInfo
		err   error
	)
	switch {
	case query.Get("year") != "":
		year, convErr := strconv.Atoi(query.Get("year"))
		if convErr != nil {
			h.respondError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		infos, err = h.store.ListByYear(ctx, year)
	case query.Get("name") != "":
		infos, err = h.store.ListByName(ctx, query.Get("name"))
	default:
		infos, err = h.store.ListAll(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list movie infos from store", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve movie infos")
		return
	}

	h.logger.InfoContext(ctx, "Movie infos retrieved", slog.Int("count", len(infos)))
	h.respondJSON(w, r, http.StatusOK, infos)
}

// GetMovieInfoByID handles GET /v1/movieinfos/{id}. An unknown id is a 404 with an empty body.
func (h *MovieInfoHandler) GetMovieInfoByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]
	h.logger.InfoContext(ctx, "GetMovieInfoByID endpoint hit", slog.String("movieInfoID", id))

	info, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrMovieInfoNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Error finding movie info by ID", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Error finding movie info")
		return
	}
	h.respondJSON(w, r, http.StatusOK, info)
}

// UpdateMovieInfo handles PUT /v1/movieinfos/{id}. An unknown id is a 404 with an empty body.
func (h *MovieInfoHandler) UpdateMovieInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer r.Body.Close()
	id := mux.Vars(r)["id"]
	h.logger.InfoContext(ctx, "UpdateMovieInfo endpoint hit", slog.String("movieInfoID", id))

	info, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	updated, err := h.store.Update(ctx, id, info)
	if err != nil {
		if errors.Is(err, store.ErrMovieInfoNotFound) {
			h.logger.WarnContext(ctx, "Attempt to update missing movie info", slog.String("movieInfoID", id))
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update movie info", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update movie info")
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

// DeleteMovieInfo handles DELETE /v1/movieinfos/{id}. It always answers 204 unless the store fails.
func (h *MovieInfoHandler) DeleteMovieInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]
	h.logger.InfoContext(ctx, "DeleteMovieInfo endpoint hit", slog.String("movieInfoID", id))

	if err := h.store.Delete(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "Failed to delete movie info", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to delete movie info")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
