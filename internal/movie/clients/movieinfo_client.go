// Package clients holds the typed HTTP clients the gateway uses to call the
// MovieInfo and Review stores.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moviehub/internal/domain"
)

const (
	movieInfoService = "MovieInfo Service"
	reviewService    = "Review Service"
)

// UpstreamObserver records the outcome of each upstream call.
type UpstreamObserver interface {
	ObserveUpstream(upstream, outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveUpstream(string, string) {}

// NewHTTPClient returns the http.Client shared by the upstream clients.
// timeout bounds each upstream call.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// MovieInfoClient fetches movie info documents from the MovieInfo store.
type MovieInfoClient struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	observer UpstreamObserver
}

// NewMovieInfoClient creates a client for baseURL, e.g. http://localhost:8080/v1/movieinfos.
// observer may be nil.
func NewMovieInfoClient(baseURL string, httpClient *http.Client, logger *slog.Logger, observer UpstreamObserver) *MovieInfoClient {
	if observer == nil {
		observer = noopObserver{}
	}
	return &MovieInfoClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		logger:   logger,
		observer: observer,
	}
}

// FetchByID returns the movie info with the given id. A 404 is reported as a
// *ClientError matching ErrNotFound, any other 4xx carries the upstream body,
// and a 5xx is a *ServerError with a fixed message.
func (c *MovieInfoClient) FetchByID(ctx context.Context, movieID string) (info *domain.MovieInfo, err error) {
	defer func() { c.observer.ObserveUpstream("movieinfo", outcome(err)) }()

	endpoint := c.baseURL + "/" + url.PathEscape(movieID)
	c.logger.DebugContext(ctx, "Calling MovieInfo service", slog.String("movie_id", movieID), slog.String("url", endpoint))

	status, body, err := get(ctx, c.http, endpoint, movieInfoService)
	if err != nil {
		c.logger.ErrorContext(ctx, "MovieInfo service unreachable", slog.String("movie_id", movieID), slog.String("error", err.Error()))
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		c.logger.ErrorContext(ctx, "MovieInfo service returned error status", slog.String("movie_id", movieID), slog.Int("status", status))
		return nil, &ClientError{
			Service:    movieInfoService,
			StatusCode: status,
			Message:    "There is no Movie Info with id: " + movieID,
		}
	case status >= 400 && status < 500:
		c.logger.ErrorContext(ctx, "MovieInfo service returned error status", slog.String("movie_id", movieID), slog.Int("status", status))
		return nil, &ClientError{Service: movieInfoService, StatusCode: status, Message: string(body)}
	case status >= 500:
		c.logger.ErrorContext(ctx, "MovieInfo service returned error status", slog.String("movie_id", movieID), slog.Int("status", status))
		return nil, &ServerError{
			Service:    movieInfoService,
			StatusCode: status,
			Message:    "Internal Server Exception in " + movieInfoService,
		}
	}

	var out domain.MovieInfo
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.ErrorContext(ctx, "Failed to decode MovieInfo response", slog.String("movie_id", movieID), slog.String("error", err.Error()))
		return nil, &ServerError{
			Service:    movieInfoService,
			StatusCode: status,
			Message:    "Internal Server Exception in " + movieInfoService,
		}
	}
	return &out, nil
}

// get performs a GET and returns the status code and full body. Only network
// and context failures are returned as errors, always as *TransportError.
func get(ctx context.Context, client *http.Client, endpoint, service string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, &TransportError{Service: service, Message: "Unable to reach " + service, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Service: service, Message: "Unable to reach " + service, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{
			Service: service,
			Message: "Unable to reach " + service,
			Err:     fmt.Errorf("failed to read response body: %w", err),
		}
	}
	return resp.StatusCode, body, nil
}
