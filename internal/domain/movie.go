package domain

// Movie is the composite view returned by the gateway. It is built per request
// and never stored.
type Movie struct {
	MovieInfo  MovieInfo `json:"movieInfo"`
	ReviewList []Review  `json:"reviewList"`
}

// NewMovie composes a Movie. A nil review slice is normalized to empty so the
// wire form is always a JSON array.
func NewMovie(info MovieInfo, reviews []Review) *Movie {
	if reviews == nil {
		reviews = []Review{}
	}
	return &Movie{MovieInfo: info, ReviewList: reviews}
}
