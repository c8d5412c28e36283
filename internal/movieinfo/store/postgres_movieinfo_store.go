package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"moviehub/internal/domain"
)

// Migrations holds the schema of the movie_infos table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const movieInfoColumns = `id, name, year, cast_members, release_date`

// PostgresMovieInfoStore implements MovieInfoStore on PostgreSQL.
type PostgresMovieInfoStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresMovieInfoStore wraps an already connected database.
func NewPostgresMovieInfoStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieInfoStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMovieInfoStore{db: db, logger: logger}, nil
}

// Create inserts info. An empty id is replaced by a new UUID.
// A primary key collision is reported as ErrMovieInfoAlreadyExists.
func (s *PostgresMovieInfoStore) Create(ctx context.Context, info *domain.MovieInfo) error {
	query := `INSERT INTO movie_infos (` + movieInfoColumns + `) VALUES ($1, $2, $3, $4, $5)`
	if info.ID == "" {
		info.ID = uuid.NewString()
	}

	s.logger.DebugContext(ctx, "Executing Create movie info query", slog.String("movieInfoID", info.ID), slog.String("name", info.Name))
	_, err := s.db.ExecContext(ctx, query, info.ID, info.Name, info.Year, info.Cast, info.ReleaseDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Movie info creation failed due to unique constraint",
				slog.String("movieInfoID", info.ID), slog.String("constraint", pqErr.Constraint))
			return ErrMovieInfoAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create movie info in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie info: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie info created in DB", slog.String("movieInfoID", info.ID))
	return nil
}

func (s *PostgresMovieInfoStore) GetByID(ctx context.Context, id string) (*domain.MovieInfo, error) {
	query := `SELECT ` + movieInfoColumns + ` FROM movie_infos WHERE id = $1`
	var info domain.MovieInfo

	s.logger.DebugContext(ctx, "Executing GetMovieInfoByID query", slog.String("movieInfoID", id))
	if err := s.db.GetContext(ctx, &info, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Movie info not found by ID in DB", slog.String("movieInfoID", id))
			return nil, ErrMovieInfoNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie info by ID from DB", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie info by ID: %w", err)
	}
	return &info, nil
}

func (s *PostgresMovieInfoStore) ListAll(ctx context.Context) ([]*domain.MovieInfo, error) {
	return s.list(ctx, `SELECT `+movieInfoColumns+` FROM movie_infos ORDER BY id`)
}

func (s *PostgresMovieInfoStore) ListByYear(ctx context.Context, year int) ([]*domain.MovieInfo, error) {
	return s.list(ctx, `SELECT `+movieInfoColumns+` FROM movie_infos WHERE year = $1 ORDER BY id`, year)
}

func (s *PostgresMovieInfoStore) ListByName(ctx context.Context, name string) ([]*domain.MovieInfo, error) {
	return s.list(ctx, `SELECT `+movieInfoColumns+` FROM movie_infos WHERE name = $1 ORDER BY id`, name)
}

func (s *PostgresMovieInfoStore) list(ctx context.Context, query string, args ...interface{}) ([]*domain.MovieInfo, error) {
	infos := []*domain.MovieInfo{}
	s.logger.DebugContext(ctx, "Executing List movie infos query", slog.String("query", query), slog.Any("args", args))
	if err := s.db.SelectContext(ctx, &infos, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movie infos from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movie infos: %w", err)
	}
	return infos, nil
}

// Update replaces name, year, cast and release date in a single statement.
func (s *PostgresMovieInfoStore) Update(ctx context.Context, id string, info domain.MovieInfo) (*domain.MovieInfo, error) {
	query := `UPDATE movie_infos SET name = $1, year = $2, cast_members = $3, release_date = $4 WHERE id = $5`

	s.logger.DebugContext(ctx, "Executing Update movie info query", slog.String("movieInfoID", id))
	result, err := s.db.ExecContext(ctx, query, info.Name, info.Year, info.Cast, info.ReleaseDate, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update movie info in DB", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update movie info: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check movie info update result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No movie info found to update in DB", slog.String("movieInfoID", id))
		return nil, ErrMovieInfoNotFound
	}

	updated := info.Clone()
	updated.ID = id
	s.logger.InfoContext(ctx, "Movie info updated in DB", slog.String("movieInfoID", id))
	return &updated, nil
}

// Delete removes the document. Zero affected rows is fine.
func (s *PostgresMovieInfoStore) Delete(ctx context.Context, id string) error {
	s.logger.DebugContext(ctx, "Executing Delete movie info query", slog.String("movieInfoID", id))
	if _, err := s.db.ExecContext(ctx, `DELETE FROM movie_infos WHERE id = $1`, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete movie info in DB", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete movie info: %w", err)
	}
	return nil
}
