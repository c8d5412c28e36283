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
	httpAPI "moviehub/internal/review/api"
	"moviehub/internal/review/store"
	"moviehub/internal/validation"
)

const serviceName = "review"

func main() {
	cfg, err := config.LoadReviewService()
	if err != nil {
		slog.Error("Failed to load ReviewService configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	ctx := context.Background()
	reviewStorage, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("ReviewService failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	grpcSrv := grpcServer.NewServer(serviceName, logger)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		logger.Error("Failed to listen for ReviewService gRPC", slog.String("port", cfg.GRPCPort), slog.String("error", err.Error()))
		os.Exit(1)
	}
	go func() {
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("ReviewService gRPC server Serve() failed", slog.String("error", err.Error()))
		}
	}()

	m := metrics.New(serviceName)
	handler := httpAPI.NewReviewHandler(reviewStorage, logger, validation.New())
	router := httpAPI.NewRouter(handler, m.Handler(), logging.Middleware(logger), m.Middleware())
	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info("ReviewService HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ReviewService HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("ReviewService shutting down...")
	grpcSrv.SetServing(ctx, false)

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ReviewService HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("ReviewService HTTP server gracefully stopped.")
	}
	grpcSrv.Stop()
	logger.Info("ReviewService stopped.")
}

func newStore(ctx context.Context, cfg *config.ReviewService, logger *slog.Logger) (store.ReviewStore, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("REVIEW_DATABASE_URL not set, using in-memory Review store")
		return store.NewMemoryReviewStore(logger), func() {}, nil
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		logger.Info("Closing ReviewService PostgreSQL database connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close ReviewService PostgreSQL connection", slog.String("error", err.Error()))
		}
	}

	if cfg.Migrate {
		if err := database.Migrate(db, store.Migrations, "migrations", "schema_migrations_review", logger); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("failed to migrate review schema: %w", err)
		}
	}

	s, err := store.NewPostgresReviewStore(db, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	logger.Info("PostgreSQL ReviewStore initialized.")
	return s, closeDB, nil
}
