// Package gateway composes a Movie from the MovieInfo and Review stores.
package gateway

import (
	"context"
	"log/slog"

	"moviehub/internal/domain"
)

// MovieInfoFetcher loads a single movie info document by id.
type MovieInfoFetcher interface {
	FetchByID(ctx context.Context, movieID string) (*domain.MovieInfo, error)
}

// ReviewFetcher loads the reviews of a movie. A movie without reviews yields
// an empty slice, not an error.
type ReviewFetcher interface {
	FetchByMovieID(ctx context.Context, movieID string) ([]domain.Review, error)
}

// Service builds composite movies. With parallel set, the review lookup runs
// alongside the movie info lookup; a movie info failure still wins over a
// review failure and cancels the review call.
type Service struct {
	movieInfos MovieInfoFetcher
	reviews    ReviewFetcher
	parallel   bool
	logger     *slog.Logger
}

// NewService builds the aggregation service. With parallel set, the review
// lookup runs alongside the movie info lookup and is canceled when the latter
// fails.
func NewService(movieInfos MovieInfoFetcher, reviews ReviewFetcher, parallel bool, logger *slog.Logger) *Service {
	return &Service{
		movieInfos: movieInfos,
		reviews:    reviews,
		parallel:   parallel,
		logger:     logger,
	}
}

// GetMovie returns the movie info of movieID together with its reviews.
// Either lookup failing fails the whole call; no partial Movie is returned.
func (s *Service) GetMovie(ctx context.Context, movieID string) (*domain.Movie, error) {
	if s.parallel {
		return s.getMovieParallel(ctx, movieID)
	}
	return s.getMovieSequential(ctx, movieID)
}

func (s *Service) getMovieSequential(ctx context.Context, movieID string) (*domain.Movie, error) {
	info, err := s.movieInfos.FetchByID(ctx, movieID)
	if err != nil {
		s.logger.WarnContext(ctx, "Movie info lookup failed", slog.String("movie_id", movieID), slog.String("error", err.Error()))
		return nil, err
	}
	reviews, err := s.reviews.FetchByMovieID(ctx, movieID)
	if err != nil {
		s.logger.WarnContext(ctx, "Review lookup failed", slog.String("movie_id", movieID), slog.String("error", err.Error()))
		return nil, err
	}
	return s.compose(ctx, info, reviews), nil
}

type reviewResult struct {
	reviews []domain.Review
	err     error
}

func (s *Service) getMovieParallel(ctx context.Context, movieID string) (*domain.Movie, error) {
	reviewCtx, cancelReviews := context.WithCancel(ctx)
	defer cancelReviews()

	done := make(chan reviewResult, 1)
	go func() {
		reviews, err := s.reviews.FetchByMovieID(reviewCtx, movieID)
		done <- reviewResult{reviews: reviews, err: err}
	}()

	info, err := s.movieInfos.FetchByID(ctx, movieID)
	if err != nil {
		cancelReviews()
		<-done
		s.logger.WarnContext(ctx, "Movie info lookup failed", slog.String("movie_id", movieID), slog.String("error", err.Error()))
		return nil, err
	}

	res := <-done
	if res.err != nil {
		s.logger.WarnContext(ctx, "Review lookup failed", slog.String("movie_id", movieID), slog.String("error", res.err.Error()))
		return nil, res.err
	}
	return s.compose(ctx, info, res.reviews), nil
}

func (s *Service) compose(ctx context.Context, info *domain.MovieInfo, reviews []domain.Review) *domain.Movie {
	s.logger.DebugContext(ctx, "Movie composed", slog.String("movie_id", info.ID), slog.Int("reviews", len(reviews)))
	return domain.NewMovie(*info, reviews)
}
