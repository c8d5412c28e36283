package clients

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"moviehub/internal/domain"
)

// ReviewClient fetches the reviews of a movie from the Review store.
type ReviewClient struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	observer UpstreamObserver
}

// NewReviewClient creates a client for baseURL, e.g. http://localhost:8081/v1/reviews.
// observer may be nil.
func NewReviewClient(baseURL string, httpClient *http.Client, logger *slog.Logger, observer UpstreamObserver) *ReviewClient {
	if observer == nil {
		observer = noopObserver{}
	}
	return &ReviewClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		logger:   logger,
		observer: observer,
	}
}

// FetchByMovieID returns every review of movieID. A 404 from the store means
// "no reviews" and yields an empty slice.
func (c *ReviewClient) FetchByMovieID(ctx context.Context, movieID string) (reviews []domain.Review, err error) {
	defer func() { c.observer.ObserveUpstream("review", outcome(err)) }()

	endpoint := c.baseURL + "?" + url.Values{"movieInfoId": {movieID}}.Encode()
	c.logger.DebugContext(ctx, "Calling Review service", slog.String("movie_id", movieID), slog.String("url", endpoint))

	status, body, err := get(ctx, c.http, endpoint, reviewService)
	if err != nil {
		c.logger.ErrorContext(ctx, "Review service unreachable", slog.String("movie_id", movieID), slog.String("error", err.Error()))
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return []domain.Review{}, nil
	case status >= 400 && status < 500:
		c.logger.ErrorContext(ctx, "Review service returned error status", slog.String("movie_id", movieID), slog.Int("status", status))
		return nil, &ClientError{Service: reviewService, StatusCode: status, Message: string(body)}
	case status >= 500:
		c.logger.ErrorContext(ctx, "Review service returned error status", slog.String("movie_id", movieID), slog.Int("status", status))
		return nil, &ServerError{
			Service:    reviewService,
			StatusCode: status,
			Message:    "Internal Server Exception in " + reviewService,
		}
	}

	out := []domain.Review{}
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.ErrorContext(ctx, "Failed to decode Review response", slog.String("movie_id", movieID), slog.String("error", err.Error()))
		return nil, &ServerError{
			Service:    reviewService,
			StatusCode: status,
			Message:    "Internal Server Exception in " + reviewService,
		}
	}
	if out == nil {
		out = []domain.Review{}
	}
	return out, nil
}
