package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/domain"
	"moviehub/internal/movie/clients"
)

type movieInfoFunc func(ctx context.Context, movieID string) (*domain.MovieInfo, error)

func (f movieInfoFunc) FetchByID(ctx context.Context, movieID string) (*domain.MovieInfo, error) {
	return f(ctx, movieID)
}

type reviewFunc func(ctx context.Context, movieID string) ([]domain.Review, error)

func (f reviewFunc) FetchByMovieID(ctx context.Context, movieID string) ([]domain.Review, error) {
	return f(ctx, movieID)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func darkKnightRises(_ context.Context, movieID string) (*domain.MovieInfo, error) {
	if movieID != "abc" {
		return nil, &clients.ClientError{
			Service:    "MovieInfo Service",
			StatusCode: http.StatusNotFound,
			Message:    "There is no Movie Info with id: " + movieID,
		}
	}
	return &domain.MovieInfo{
		ID:          "abc",
		Name:        "Dark Knight Rises",
		Year:        2012,
		Cast:        pq.StringArray{"Christian Bale", "Tom Hardy"},
		ReleaseDate: domain.NewDate(2012, 7, 20),
	}, nil
}

func twoReviews(_ context.Context, movieID string) ([]domain.Review, error) {
	return []domain.Review{
		{ID: "1", MovieInfoID: movieID, Comment: "Awesome Movie", Rating: 9.0},
		{ID: "2", MovieInfoID: movieID, Comment: "Excellent Movie", Rating: 8.0},
	}, nil
}

func unreachableReviews(ctx context.Context, _ string) ([]domain.Review, error) {
	return nil, &clients.TransportError{Service: "Review Service", Message: "Unable to reach Review Service", Err: errors.New("connection refused")}
}

func forEachMode(t *testing.T, fn func(t *testing.T, parallel bool)) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) { fn(t, parallel) })
	}
}

func TestGetMovie(t *testing.T) {
	forEachMode(t, func(t *testing.T, parallel bool) {
		svc := NewService(movieInfoFunc(darkKnightRises), reviewFunc(twoReviews), parallel, discardLogger)

		movie, err := svc.GetMovie(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "Dark Knight Rises", movie.MovieInfo.Name)
		assert.Len(t, movie.ReviewList, 2)
	})
}

func TestGetMovieWithoutReviews(t *testing.T) {
	forEachMode(t, func(t *testing.T, parallel bool) {
		none := reviewFunc(func(context.Context, string) ([]domain.Review, error) { return nil, nil })
		svc := NewService(movieInfoFunc(darkKnightRises), none, parallel, discardLogger)

		movie, err := svc.GetMovie(context.Background(), "abc")
		require.NoError(t, err)
		assert.NotNil(t, movie.ReviewList)
		assert.Empty(t, movie.ReviewList)
	})
}

func TestGetMovieNotFound(t *testing.T) {
	forEachMode(t, func(t *testing.T, parallel bool) {
		svc := NewService(movieInfoFunc(darkKnightRises), reviewFunc(twoReviews), parallel, discardLogger)

		movie, err := svc.GetMovie(context.Background(), "xyz")
		assert.Nil(t, movie)
		assert.ErrorIs(t, err, clients.ErrNotFound)
		assert.Equal(t, "There is no Movie Info with id: xyz", err.Error())
	})
}

func TestGetMovieReviewStoreUnreachable(t *testing.T) {
	forEachMode(t, func(t *testing.T, parallel bool) {
		svc := NewService(movieInfoFunc(darkKnightRises), reviewFunc(unreachableReviews), parallel, discardLogger)

		movie, err := svc.GetMovie(context.Background(), "abc")
		assert.Nil(t, movie)
		var te *clients.TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, http.StatusInternalServerError, clients.StatusCode(err))
	})
}

func TestGetMovieInfoFailureWins(t *testing.T) {
	forEachMode(t, func(t *testing.T, parallel bool) {
		svc := NewService(movieInfoFunc(darkKnightRises), reviewFunc(unreachableReviews), parallel, discardLogger)

		_, err := svc.GetMovie(context.Background(), "xyz")
		assert.ErrorIs(t, err, clients.ErrNotFound)
	})
}

func TestGetMovieParallelCancelsReviewLookup(t *testing.T) {
	started := make(chan struct{})
	canceled := make(chan struct{})
	reviews := reviewFunc(func(ctx context.Context, _ string) ([]domain.Review, error) {
		close(started)
		<-ctx.Done()
		close(canceled)
		return nil, ctx.Err()
	})
	infos := movieInfoFunc(func(ctx context.Context, movieID string) (*domain.MovieInfo, error) {
		<-started
		return nil, &clients.ServerError{Service: "MovieInfo Service", StatusCode: 500, Message: "Internal Server Exception in MovieInfo Service"}
	})
	svc := NewService(infos, reviews, true, discardLogger)

	_, err := svc.GetMovie(context.Background(), "abc")
	var se *clients.ServerError
	require.ErrorAs(t, err, &se)

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("review lookup was not canceled")
	}
}

func TestGetMovieCallerCanceled(t *testing.T) {
	forEachMode(t, func(t *testing.T, parallel bool) {
		blocking := movieInfoFunc(func(ctx context.Context, _ string) (*domain.MovieInfo, error) {
			<-ctx.Done()
			return nil, &clients.TransportError{Service: "MovieInfo Service", Message: "Unable to reach MovieInfo Service", Err: ctx.Err()}
		})
		waiting := reviewFunc(func(ctx context.Context, _ string) ([]domain.Review, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
		svc := NewService(blocking, waiting, parallel, discardLogger)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		movie, err := svc.GetMovie(ctx, "abc")
		assert.Nil(t, movie)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
