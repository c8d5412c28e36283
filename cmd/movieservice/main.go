package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/logging"
	"moviehub/internal/metrics"
	httpAPI "moviehub/internal/movie/api"
	"moviehub/internal/movie/clients"
	"moviehub/internal/movie/gateway"
)

func main() {
	cfg, err := config.LoadMovieService()
	if err != nil {
		slog.Error("Failed to load MovieService configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)
	m := metrics.New("movie")

	httpClient := clients.NewHTTPClient(cfg.UpstreamTimeout)
	movieInfoClient := clients.NewMovieInfoClient(cfg.MovieInfoURL, httpClient, logger, m)
	reviewClient := clients.NewReviewClient(cfg.ReviewsURL, httpClient, logger, m)
	svc := gateway.NewService(movieInfoClient, reviewClient, cfg.ParallelFetch, logger)
	logger.Info("MovieService upstreams configured",
		slog.String("movieinfo_url", cfg.MovieInfoURL),
		slog.String("reviews_url", cfg.ReviewsURL),
		slog.Duration("timeout", cfg.UpstreamTimeout),
		slog.Bool("parallel", cfg.ParallelFetch))

	var checks []httpAPI.HealthCheck
	for _, upstream := range []struct{ name, addr string }{
		{"movieinfo", cfg.MovieInfoGRPC},
		{"review", cfg.ReviewGRPC},
	} {
		if upstream.addr == "" {
			continue
		}
		hc, err := clients.NewHealthChecker(upstream.name, upstream.addr, upstream.name, logger)
		if err != nil {
			logger.Error("Failed to create upstream health checker", slog.String("upstream", upstream.name), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer hc.Close()
		checks = append(checks, hc)
	}

	handler := httpAPI.NewMovieHandler(svc, logger, checks...)
	router := httpAPI.NewRouter(handler, m.Handler(), logging.Middleware(logger), m.Middleware())
	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2*cfg.UpstreamTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info("MovieService HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("MovieService HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("MovieService shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("MovieService HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("MovieService HTTP server gracefully stopped.")
	}
}
