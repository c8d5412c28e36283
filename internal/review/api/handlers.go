// Package api exposes the Review store over HTTP on /v1/reviews.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"moviehub/internal/domain"
	"moviehub/internal/review/store"
	"moviehub/internal/validation"
)

type ReviewHandler struct {
	store     store.ReviewStore
	logger    *slog.Logger
	validator *validation.Validator
}

func NewReviewHandler(s store.ReviewStore, l *slog.Logger, v *validation.Validator) *ReviewHandler {
	return &ReviewHandler{
		store:     s,
		logger:    l,
		validator: v,
	}
}

func (h *ReviewHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *ReviewHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func (h *ReviewHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (domain.Review, bool) {
	ctx := r.Context()
	var review domain.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode request body for review", slog.String("error", err.Error()))
		h.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return review, false
	}
	if err := h.validator.Struct(ctx, review, domain.ReviewMessages); err != nil {
		h.logger.ErrorContext(ctx, "Review request validation failed", slog.String("error", err.Error()))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return review, false
	}
	return review, true
}

// CreateReview handles POST /v1/reviews.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer r.Body.Close()

	review, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	if err := h.store.Create(ctx, &review); err != nil {
		h.logger.ErrorContext(ctx, "Failed to create review in store", slog.String("error", err.Error()))
		if errors.Is(err, store.ErrReviewAlreadyExists) {
			h.respondError(w, http.StatusConflict, "Review with this id already exists")
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to create review")
		}
		return
	}
	h.logger.InfoContext(ctx, "Review created successfully", slog.String("reviewID", review.ID), slog.String("movieInfoID", review.MovieInfoID))
	h.respondJSON(w, r, http.StatusCreated, review)
}

// GetReviews handles GET /v1/reviews, optionally filtered by ?movieInfoId=.
// A movie without reviews yields 200 with an empty array.
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieInfoID := r.URL.Query().Get("movieInfoId")

	var (
		reviews []*domain.Review
		err     error
	)
	if movieInfoID != "" {
		reviews, err = h.store.ListByMovieID(ctx, movieInfoID)
	} else {
		reviews, err = h.store.ListAll(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list reviews from store", slog.String("movieInfoID", movieInfoID), slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	h.logger.InfoContext(ctx, "Reviews retrieved successfully", slog.String("movieInfoID", movieInfoID), slog.Int("count", len(reviews)))
	h.respondJSON(w, r, http.StatusOK, reviews)
}

// GetReviewByID handles GET /v1/reviews/{id}.
func (h *ReviewHandler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := mux.Vars(r)["id"]

	review, err := h.store.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.respondError(w, http.StatusNotFound, "Review not found with the id :"+reviewID)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get review", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve review")
		return
	}
	h.respondJSON(w, r, http.StatusOK, review)
}

// UpdateReview handles PUT /v1/reviews/{id}.
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer r.Body.Close()
	reviewID := mux.Vars(r)["id"]

	review, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	updated, err := h.store.Update(ctx, reviewID, review)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.logger.WarnContext(ctx, "Attempt to update missing review", slog.String("reviewID", reviewID))
			h.respondError(w, http.StatusNotFound, "Review not found with the id :"+reviewID)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update review", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

// DeleteReview handles DELETE /v1/reviews/{id}.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID := mux.Vars(r)["id"]

	if err := h.store.Delete(ctx, reviewID); err != nil {
		h.logger.ErrorContext(ctx, "Failed to delete review", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Hello is a trivial liveness endpoint.
func (h *ReviewHandler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("hello"))
}
