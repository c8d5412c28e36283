package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/database"
	grpcServer "moviehub/internal/grpc"
	"moviehub/internal/logging"
	"moviehub/internal/metrics"
	httpAPI "moviehub/internal/movieinfo/api"
	"moviehub/internal/movieinfo/store"
	"moviehub/internal/validation"
)

const serviceName = "movieinfo"

func main() {
	cfg, err := config.LoadMovieInfoService()
	if err != nil {
		slog.Error("Failed to load MovieInfoService configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	ctx := context.Background()
	movieInfoStorage, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("MovieInfoService failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	// --- gRPC health server ---
	grpcSrv := grpcServer.NewServer(serviceName, logger)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		logger.Error("Failed to listen for MovieInfoService gRPC", slog.String("port", cfg.GRPCPort), slog.String("error", err.Error()))
		os.Exit(1)
	}
	go func() {
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("MovieInfoService gRPC server Serve() failed", slog.String("error", err.Error()))
		}
	}()

	// --- HTTP server ---
	m := metrics.New(serviceName)
	handler := httpAPI.NewMovieInfoHandler(movieInfoStorage, logger, validation.New())
	router := httpAPI.NewRouter(handler, m.Handler(), logging.Middleware(logger), m.Middleware())
	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info("MovieInfoService HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("MovieInfoService HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("MovieInfoService shutting down...")
	grpcSrv.SetServing(ctx, false)

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("MovieInfoService HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("MovieInfoService HTTP server gracefully stopped.")
	}
	grpcSrv.Stop()
	logger.Info("MovieInfoService stopped.")
}

// newStore returns the Postgres store when a database URL is configured and
// the in-memory store otherwise.
func newStore(ctx context.Context, cfg *config.MovieInfoService, logger *slog.Logger) (store.MovieInfoStore, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("MOVIEINFO_DATABASE_URL not set, using in-memory MovieInfo store")
		return store.NewMemoryMovieInfoStore(logger), func() {}, nil
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		logger.Info("Closing MovieInfoService PostgreSQL database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close MovieInfoService PostgreSQL connection", slog.String("error", err.Error()))
		}
	}

	if cfg.Migrate {
		if err := database.Migrate(db, store.Migrations, "migrations", "schema_migrations_movieinfo", logger); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("failed to migrate movieinfo schema: %w", err)
		}
	}

	s, err := store.NewPostgresMovieInfoStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	logger.Info("PostgreSQL MovieInfoStore initialized.")
	return s, closeDB, nil
}
