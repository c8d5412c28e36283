package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/domain"
)

func TestReviewViolationsAreSortedAndJoined(t *testing.T) {
	v := New()
	review := domain.Review{Comment: "Awesome Movie", Rating: -9.0}

	err := v.Struct(context.Background(), review, domain.ReviewMessages)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"review.MovieInfoId : Must not be Null",
		"review.negative : rating is negative and please pass a non-negative value",
	}, verr.Messages)
	assert.Equal(t, "review.MovieInfoId : Must not be Null,review.negative : rating is negative and please pass a non-negative value", err.Error())
}

func TestMovieInfoViolations(t *testing.T) {
	v := New()
	info := domain.MovieInfo{
		Name:        "",
		Year:        -2012,
		Cast:        pq.StringArray{"", ""},
		ReleaseDate: domain.NewDate(2012, 7, 20),
	}

	err := v.Struct(context.Background(), info, domain.MovieInfoMessages)
	require.Error(t, err)
	assert.Equal(t,
		"movieInfod.year must be positive,movieInfos.cast must be present,movieInfos.name must be present",
		err.Error())
}

func TestEmptyCastIsRejected(t *testing.T) {
	v := New()
	info := domain.MovieInfo{Name: "Batman Begins", Year: 2005, Cast: pq.StringArray{}}

	err := v.Struct(context.Background(), info, domain.MovieInfoMessages)
	require.Error(t, err)
	assert.Equal(t, "movieInfos.cast must be present", err.Error())
}

func TestValidDocumentPasses(t *testing.T) {
	v := New()
	info := domain.MovieInfo{
		Name: "Batman Begins",
		Year: 2005,
		Cast: pq.StringArray{"Christian Bale", "Michael Cane"},
	}
	assert.NoError(t, v.Struct(context.Background(), info, domain.MovieInfoMessages))

	review := domain.Review{MovieInfoID: "abc", Comment: "ok", Rating: 0}
	assert.NoError(t, v.Struct(context.Background(), review, domain.ReviewMessages))
}
