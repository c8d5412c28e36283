package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/domain"
)

func newMockedStore(t *testing.T) (*PostgresMovieInfoStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewPostgresMovieInfoStore(sqlx.NewDb(db, "postgres"), discardLogger())
	require.NoError(t, err)
	return s, mock
}

func movieInfoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "year", "cast_members", "release_date"})
}

func TestNewPostgresMovieInfoStoreRejectsNilDB(t *testing.T) {
	_, err := NewPostgresMovieInfoStore(nil, discardLogger())
	assert.Error(t, err)
}

func TestPostgresCreateAssignsID(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO movie_infos`)).
		WithArgs(sqlmock.AnyArg(), "Batman Begins", 2005, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	info := &domain.MovieInfo{Name: "Batman Begins", Year: 2005, Cast: pq.StringArray{"Christian Bale"}}
	require.NoError(t, s.Create(context.Background(), info))
	assert.NotEmpty(t, info.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateDuplicateID(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO movie_infos`)).
		WithArgs("abc", "Dark Knight Rises", 2012, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "movie_infos_pkey"})

	info := &domain.MovieInfo{ID: "abc", Name: "Dark Knight Rises", Year: 2012, Cast: pq.StringArray{"Christian Bale"}}
	err := s.Create(context.Background(), info)
	assert.ErrorIs(t, err, ErrMovieInfoAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateOtherErrorIsWrapped(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO movie_infos`)).
		WillReturnError(sql.ErrConnDone)

	err := s.Create(context.Background(), &domain.MovieInfo{Name: "Batman Begins", Year: 2005})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, errors.Is(err, ErrMovieInfoAlreadyExists))
}

func TestPostgresGetByID(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, year, cast_members, release_date FROM movie_infos WHERE id = $1`)).
		WithArgs("abc").
		WillReturnRows(movieInfoRows().AddRow("abc", "Dark Knight Rises", 2012, "{\"Christian Bale\",\"Tom Hardy\"}",
			time.Date(2012, 7, 20, 0, 0, 0, 0, time.UTC)))

	got, err := s.GetByID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Dark Knight Rises", got.Name)
	assert.Equal(t, pq.StringArray{"Christian Bale", "Tom Hardy"}, got.Cast)
	assert.Equal(t, "2012-07-20", got.ReleaseDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM movie_infos WHERE id = $1`)).
		WithArgs("xyz").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), "xyz")
	assert.ErrorIs(t, err, ErrMovieInfoNotFound)
}

func TestPostgresListByYear(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM movie_infos WHERE year = $1`)).
		WithArgs(2005).
		WillReturnRows(movieInfoRows().AddRow("1", "Batman Begins", 2005, "{\"Christian Bale\"}", nil))

	got, err := s.ListByYear(context.Background(), 2005)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2005, got[0].Year)
	assert.True(t, got[0].ReleaseDate.IsZero())
}

func TestPostgresListByNameEmpty(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM movie_infos WHERE name = $1`)).
		WithArgs("nothing").
		WillReturnRows(movieInfoRows())

	got, err := s.ListByName(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresListAllError(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM movie_infos ORDER BY id`)).
		WillReturnError(errors.New("connection reset"))

	_, err := s.ListAll(context.Background())
	assert.Error(t, err)
}

func TestPostgresUpdate(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE movie_infos SET name = $1, year = $2, cast_members = $3, release_date = $4 WHERE id = $5`)).
		WithArgs("Batman goes home", 2005, sqlmock.AnyArg(), sqlmock.AnyArg(), "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := s.Update(context.Background(), "abc", domain.MovieInfo{Name: "Batman goes home", Year: 2005, Cast: pq.StringArray{"Christian Bale"}})
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "Batman goes home", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateMissing(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE movie_infos`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.Update(context.Background(), "def", domain.MovieInfo{Name: "x", Year: 1, Cast: pq.StringArray{"y"}})
	assert.ErrorIs(t, err, ErrMovieInfoNotFound)
}

func TestPostgresDeleteIgnoresMissingRows(t *testing.T) {
	s, mock := newMockedStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movie_infos WHERE id = $1`)).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movie_infos WHERE id = $1`)).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), "abc"))
	require.NoError(t, s.Delete(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
