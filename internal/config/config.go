// Package config loads service configuration from the environment. A .env file
// in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// MovieInfoService configures cmd/movieinfoservice.
type MovieInfoService struct {
	HTTPPort        string        `env:"MOVIEINFO_HTTP_PORT,default=8080"`
	GRPCPort        string        `env:"MOVIEINFO_GRPC_PORT,default=9080"`
	DatabaseURL     string        `env:"MOVIEINFO_DATABASE_URL"`
	Migrate         bool          `env:"MOVIEINFO_MIGRATE,default=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=debug"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// ReviewService configures cmd/reviewservice.
type ReviewService struct {
	HTTPPort        string        `env:"REVIEW_HTTP_PORT,default=8081"`
	GRPCPort        string        `env:"REVIEW_GRPC_PORT,default=9081"`
	DatabaseURL     string        `env:"REVIEW_DATABASE_URL"`
	Migrate         bool          `env:"REVIEW_MIGRATE,default=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=debug"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// MovieService configures the aggregation gateway in cmd/movieservice.
type MovieService struct {
	HTTPPort        string        `env:"MOVIE_HTTP_PORT,default=8082"`
	MovieInfoURL    string        `env:"MOVIEINFO_URL,default=http://localhost:8080/v1/movieinfos"`
	ReviewsURL      string        `env:"REVIEWS_URL,default=http://localhost:8081/v1/reviews"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=5s"`
	ParallelFetch   bool          `env:"GATEWAY_PARALLEL_FETCH,default=true"`
	MovieInfoGRPC   string        `env:"MOVIEINFO_GRPC_ADDR"`
	ReviewGRPC      string        `env:"REVIEW_GRPC_ADDR"`
	LogLevel        string        `env:"LOG_LEVEL,default=debug"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// LoadMovieInfoService reads the MovieInfo service configuration.
func LoadMovieInfoService() (*MovieInfoService, error) {
	var cfg MovieInfoService
	if err := load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadReviewService reads the Review service configuration.
func LoadReviewService() (*ReviewService, error) {
	var cfg ReviewService
	if err := load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadMovieService reads the gateway configuration.
func LoadMovieService() (*MovieService, error) {
	var cfg MovieService
	if err := load(&cfg); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", cfg.UpstreamTimeout)
	}
	return &cfg, nil
}

func load(target interface{}) error {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envdecode.Decode(target); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}
