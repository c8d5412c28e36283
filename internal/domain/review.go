package domain

// Review is a single review document. MovieInfoID is a soft reference to
// MovieInfo.ID; nothing enforces that the movie exists.
type Review struct {
	ID          string  `json:"reviewId" db:"id"`
	MovieInfoID string  `json:"movieInfoId" db:"movie_info_id" validate:"required"`
	Comment     string  `json:"comment" db:"comment"`
	Rating      float64 `json:"rating" db:"rating" validate:"gte=0"`
}

// ReviewMessages maps validated fields to their user-facing violation message.
var ReviewMessages = map[string]string{
	"movieInfoId": "review.MovieInfoId : Must not be Null",
	"rating":      "review.negative : rating is negative and please pass a non-negative value",
}

// ApplyUpdate replaces comment, rating and movie id with the values from u.
func (r *Review) ApplyUpdate(u Review) {
	r.Comment = u.Comment
	r.Rating = u.Rating
	r.MovieInfoID = u.MovieInfoID
}
