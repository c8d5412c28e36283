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

// Migrations holds the schema of the reviews table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const reviewColumns = `id, movie_info_id, comment, rating`

// PostgresReviewStore implements ReviewStore for PostgreSQL.
type PostgresReviewStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresReviewStore wraps an already connected database.
func NewPostgresReviewStore(db *sqlx.DB, logger *slog.Logger) (*PostgresReviewStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil for PostgresReviewStore")
	}
	return &PostgresReviewStore{db: db, logger: logger}, nil
}

func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (` + reviewColumns + `) VALUES ($1, $2, $3, $4)`
	if review.ID == "" {
		review.ID = uuid.NewString()
	}

	s.logger.DebugContext(ctx, "Executing Create review query",
		slog.String("reviewID", review.ID),
		slog.String("movieInfoID", review.MovieInfoID))

	if _, err := s.db.ExecContext(ctx, query, review.ID, review.MovieInfoID, review.Comment, review.Rating); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "Review creation failed due to unique constraint",
				slog.String("reviewID", review.ID), slog.String("constraint", pqErr.Constraint))
			return ErrReviewAlreadyExists
		}
		s.logger.ErrorContext(ctx, "Failed to create review in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create review: %w", err)
	}
	s.logger.InfoContext(ctx, "Review created successfully in DB", slog.String("reviewID", review.ID))
	return nil
}

func (s *PostgresReviewStore) GetByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	var review domain.Review

	s.logger.DebugContext(ctx, "Executing GetReviewByID query", slog.String("reviewID", reviewID))
	if err := s.db.GetContext(ctx, &review, query, reviewID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Review not found by ID in DB", slog.String("reviewID", reviewID))
			return nil, ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get review by ID from DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}
	return &review, nil
}

func (s *PostgresReviewStore) ListAll(ctx context.Context) ([]*domain.Review, error) {
	reviews := []*domain.Review{}
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY id`

	s.logger.DebugContext(ctx, "Executing ListAll reviews query")
	if err := s.db.SelectContext(ctx, &reviews, query); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *PostgresReviewStore) ListByMovieID(ctx context.Context, movieInfoID string) ([]*domain.Review, error) {
	reviews := []*domain.Review{}
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE movie_info_id = $1 ORDER BY id`

	s.logger.DebugContext(ctx, "Executing ListByMovieID reviews query", slog.String("movieInfoID", movieInfoID))
	if err := s.db.SelectContext(ctx, &reviews, query, movieInfoID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews by movie from DB", slog.String("movieInfoID", movieInfoID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews by movie: %w", err)
	}
	return reviews, nil
}

// Update replaces comment, rating and movie id.
func (s *PostgresReviewStore) Update(ctx context.Context, reviewID string, review domain.Review) (*domain.Review, error) {
	query := `UPDATE reviews SET movie_info_id = $1, comment = $2, rating = $3 WHERE id = $4`

	s.logger.DebugContext(ctx, "Executing Update review query", slog.String("reviewID", reviewID))
	result, err := s.db.ExecContext(ctx, query, review.MovieInfoID, review.Comment, review.Rating, reviewID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update review in DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get rows affected after review update", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check review update result: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No review found to update in DB", slog.String("reviewID", reviewID))
		return nil, ErrReviewNotFound
	}

	updated := review
	updated.ID = reviewID
	return &updated, nil
}

func (s *PostgresReviewStore) Delete(ctx context.Context, reviewID string) error {
	s.logger.DebugContext(ctx, "Executing Delete review query", slog.String("reviewID", reviewID))
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete review in DB", slog.String("reviewID", reviewID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
