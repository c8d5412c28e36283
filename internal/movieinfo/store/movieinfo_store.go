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
	ErrMovieInfoNotFound      = errors.New("movie info not found")
	ErrMovieInfoAlreadyExists = errors.New("movie info with this ID already exists")
)

// MovieInfoStore is the persistence contract of the MovieInfo service.
// Update replaces every mutable field; Delete of an unknown id is not an error.
type MovieInfoStore interface {
	Create(ctx context.Context, info *domain.MovieInfo) error
	GetByID(ctx context.Context, id string) (*domain.MovieInfo, error)
	ListAll(ctx context.Context) ([]*domain.MovieInfo, error)
	ListByYear(ctx context.Context, year int) ([]*domain.MovieInfo, error)
	ListByName(ctx context.Context, name string) ([]*domain.MovieInfo, error)
	Update(ctx context.Context, id string, info domain.MovieInfo) (*domain.MovieInfo, error)
	Delete(ctx context.Context, id string) error
}

// MemoryMovieInfoStore keeps documents in a map. It is used when no database
// URL is configured and in tests.
type MemoryMovieInfoStore struct {
	mu     sync.RWMutex
	infos  map[string]*domain.MovieInfo
	logger *slog.Logger
}

func NewMemoryMovieInfoStore(logger *slog.Logger) *MemoryMovieInfoStore {
	return &MemoryMovieInfoStore{
		infos:  make(map[string]*domain.MovieInfo),
		logger: logger,
	}
}

// Create stores a copy of info. An empty id is replaced by a new UUID; an id
// that is already taken yields ErrMovieInfoAlreadyExists.
func (m *MemoryMovieInfoStore) Create(ctx context.Context, info *domain.MovieInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if info.ID == "" {
		info.ID = uuid.NewString()
	}
	if _, exists := m.infos[info.ID]; exists {
		m.logger.WarnContext(ctx, "Movie info with this ID already exists", slog.String("movieInfoID", info.ID))
		return ErrMovieInfoAlreadyExists
	}
	c := info.Clone()
	m.infos[info.ID] = &c
	m.logger.DebugContext(ctx, "Movie info stored in memory", slog.String("movieInfoID", info.ID))
	return nil
}

func (m *MemoryMovieInfoStore) GetByID(ctx context.Context, id string) (*domain.MovieInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.infos[id]
	if !ok {
		return nil, ErrMovieInfoNotFound
	}
	c := info.Clone()
	return &c, nil
}

func (m *MemoryMovieInfoStore) ListAll(ctx context.Context) ([]*domain.MovieInfo, error) {
	return m.filter(func(*domain.MovieInfo) bool { return true }), nil
}

func (m *MemoryMovieInfoStore) ListByYear(ctx context.Context, year int) ([]*domain.MovieInfo, error) {
	return m.filter(func(info *domain.MovieInfo) bool { return info.Year == year }), nil
}

func (m *MemoryMovieInfoStore) ListByName(ctx context.Context, name string) ([]*domain.MovieInfo, error) {
	return m.filter(func(info *domain.MovieInfo) bool { return info.Name == name }), nil
}

func (m *MemoryMovieInfoStore) Update(ctx context.Context, id string, info domain.MovieInfo) (*domain.MovieInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.infos[id]
	if !ok {
		return nil, ErrMovieInfoNotFound
	}
	existing.ApplyUpdate(info)
	c := existing.Clone()
	return &c, nil
}

func (m *MemoryMovieInfoStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.infos, id)
	return nil
}

func (m *MemoryMovieInfoStore) filter(keep func(*domain.MovieInfo) bool) []*domain.MovieInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.MovieInfo, 0, len(m.infos))
	for _, info := range m.infos {
		if keep(info) {
			c := info.Clone()
			out = append(out, &c)
		}
	}
	// Listings are ordered by id.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
