package store

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"moviehub/internal/domain"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review with this ID already exists")
)

// ReviewStore defines data operations on reviews. ListByMovieID returns an
// empty slice, not an error, when no review references the movie.
type ReviewStore interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, reviewID string) (*domain.Review, error)
	ListAll(ctx context.Context) ([]*domain.Review, error)
	ListByMovieID(ctx context.Context, movieInfoID string) ([]*domain.Review, error)
	Update(ctx context.Context, reviewID string, review domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

// MemoryReviewStore is a map-backed ReviewStore with a secondary index by movie.
type MemoryReviewStore struct {
	mu             sync.RWMutex
	reviews        map[string]*domain.Review
	reviewsByMovie map[string]map[string]struct{}
	logger         *slog.Logger
}

func NewMemoryReviewStore(logger *slog.Logger) *MemoryReviewStore {
	return &MemoryReviewStore{
		reviews:        make(map[string]*domain.Review),
		reviewsByMovie: make(map[string]map[string]struct{}),
		logger:         logger,
	}
}

func (m *MemoryReviewStore) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if _, exists := m.reviews[review.ID]; exists {
		m.logger.WarnContext(ctx, "Review with this ID already exists", slog.String("reviewID", review.ID))
		return ErrReviewAlreadyExists
	}
	c := *review
	m.reviews[c.ID] = &c
	m.index(&c)
	m.logger.DebugContext(ctx, "Review stored in memory", slog.String("reviewID", c.ID), slog.String("movieInfoID", c.MovieInfoID))
	return nil
}

func (m *MemoryReviewStore) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	review, ok := m.reviews[reviewID]
	if !ok {
		return nil, ErrReviewNotFound
	}
	c := *review
	return &c, nil
}

func (m *MemoryReviewStore) ListAll(ctx context.Context) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Review, 0, len(m.reviews))
	for _, review := range m.reviews {
		c := *review
		out = append(out, &c)
	}
	sortReviews(out)
	return out, nil
}

func (m *MemoryReviewStore) ListByMovieID(ctx context.Context, movieInfoID string) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.reviewsByMovie[movieInfoID]
	out := make([]*domain.Review, 0, len(ids))
	for id := range ids {
		c := *m.reviews[id]
		out = append(out, &c)
	}
	sortReviews(out)
	return out, nil
}

func (m *MemoryReviewStore) Update(ctx context.Context, reviewID string, review domain.Review) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.reviews[reviewID]
	if !ok {
		return nil, ErrReviewNotFound
	}
	m.unindex(existing)
	existing.ApplyUpdate(review)
	m.index(existing)
	c := *existing
	return &c, nil
}

func (m *MemoryReviewStore) Delete(ctx context.Context, reviewID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.reviews[reviewID]; ok {
		m.unindex(existing)
		delete(m.reviews, reviewID)
	}
	return nil
}

func (m *MemoryReviewStore) index(r *domain.Review) {
	ids, ok := m.reviewsByMovie[r.MovieInfoID]
	if !ok {
		ids = make(map[string]struct{})
		m.reviewsByMovie[r.MovieInfoID] = ids
	}
	ids[r.ID] = struct{}{}
}

func (m *MemoryReviewStore) unindex(r *domain.Review) {
	ids := m.reviewsByMovie[r.MovieInfoID]
	delete(ids, r.ID)
	if len(ids) == 0 {
		delete(m.reviewsByMovie, r.MovieInfoID)
	}
}

func sortReviews(reviews []*domain.Review) {
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
}
