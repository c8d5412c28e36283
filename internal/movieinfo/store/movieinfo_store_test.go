package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedMemoryStore(t *testing.T) *MemoryMovieInfoStore {
	t.Helper()
	s := NewMemoryMovieInfoStore(discardLogger())
	infos := []*domain.MovieInfo{
		{Name: "Batman Begins", Year: 2005, Cast: pq.StringArray{"Christian Bale", "Michael Cane"}, ReleaseDate: domain.NewDate(2005, 6, 15)},
		{Name: "The Dark Knight", Year: 2008, Cast: pq.StringArray{"Christian Bale", "HeathLedger"}, ReleaseDate: domain.NewDate(2008, 7, 18)},
		{ID: "abc", Name: "Dark Knight Rises", Year: 2012, Cast: pq.StringArray{"Christian Bale", "Tom Hardy"}, ReleaseDate: domain.NewDate(2012, 7, 20)},
	}
	for _, info := range infos {
		require.NoError(t, s.Create(context.Background(), info))
	}
	return s
}

func TestMemoryCreateThenGetReturnsInput(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryMovieInfoStore(discardLogger())
	input := domain.MovieInfo{
		Name:        "Batman Begins Returns",
		Year:        2005,
		Cast:        pq.StringArray{"Christian Bale", "Michael Cane"},
		ReleaseDate: domain.NewDate(2005, 6, 15),
	}

	created := input.Clone()
	require.NoError(t, s.Create(ctx, &created))
	require.NotEmpty(t, created.ID)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)

	input.ID = created.ID
	assert.Equal(t, input, *got)
}

func TestMemoryCreateKeepsSuppliedID(t *testing.T) {
	s := seedMemoryStore(t)
	got, err := s.GetByID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Dark Knight Rises", got.Name)
}

func TestMemoryCreateRejectsExistingID(t *testing.T) {
	s := seedMemoryStore(t)
	ctx := context.Background()

	dup := &domain.MovieInfo{ID: "abc", Name: "Imposter", Year: 1999, Cast: pq.StringArray{"Nobody"}}
	assert.ErrorIs(t, s.Create(ctx, dup), ErrMovieInfoAlreadyExists)

	got, err := s.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Dark Knight Rises", got.Name)
}

func TestMemoryGetUnknownID(t *testing.T) {
	s := seedMemoryStore(t)
	_, err := s.GetByID(context.Background(), "def")
	assert.ErrorIs(t, err, ErrMovieInfoNotFound)
}

func TestMemoryListByYearReturnsExactSubset(t *testing.T) {
	s := seedMemoryStore(t)
	ctx := context.Background()

	got, err := s.ListByYear(ctx, 2005)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Batman Begins", got[0].Name)

	none, err := s.ListByYear(ctx, 1999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryListByNameAndAll(t *testing.T) {
	s := seedMemoryStore(t)
	ctx := context.Background()

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byName, err := s.ListByName(ctx, "Batman Begins")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, 2005, byName[0].Year)
}

func TestMemoryUpdateReplacesAllFields(t *testing.T) {
	s := seedMemoryStore(t)
	ctx := context.Background()

	updated, err := s.Update(ctx, "abc", domain.MovieInfo{
		Name:        "Dark Knight Rises 1",
		Year:        2013,
		Cast:        pq.StringArray{"Tom Hardy"},
		ReleaseDate: domain.NewDate(2013, 1, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", updated.ID)
	assert.Equal(t, "Dark Knight Rises 1", updated.Name)
	assert.Equal(t, 2013, updated.Year)
	assert.Equal(t, pq.StringArray{"Tom Hardy"}, updated.Cast)

	got, err := s.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	_, err = s.Update(ctx, "missing", domain.MovieInfo{Name: "x", Year: 1, Cast: pq.StringArray{"y"}})
	assert.ErrorIs(t, err, ErrMovieInfoNotFound)
}

func TestMemoryDeleteIsIdempotent(t *testing.T) {
	s := seedMemoryStore(t)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "abc"))
	require.NoError(t, s.Delete(ctx, "abc"))

	_, err := s.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, ErrMovieInfoNotFound)
}

func TestMemoryReturnsCopies(t *testing.T) {
	s := seedMemoryStore(t)
	ctx := context.Background()

	got, err := s.GetByID(ctx, "abc")
	require.NoError(t, err)
	got.Cast[0] = "someone else"

	again, err := s.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Christian Bale", again.Cast[0])
}
