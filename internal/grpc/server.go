// Package grpc runs the gRPC side of the store services. It serves the
// standard grpc.health.v1 protocol, which the gateway checks for readiness,
// plus server reflection.
package grpc

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server wraps a grpc.Server with a health service for one named service.
type Server struct {
	name   string
	srv    *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates a server reporting SERVING for name and for the overall ("") service.
func NewServer(name string, logger *slog.Logger) *Server {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)

	return &Server{name: name, srv: srv, health: hs, logger: logger}
}

// Serve blocks serving on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server starting", slog.String("service", s.name), slog.String("addr", lis.Addr().String()))
	return s.srv.Serve(lis)
}

// SetServing flips the reported status of the named service.
func (s *Server) SetServing(ctx context.Context, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.logger.InfoContext(ctx, "gRPC health status changed", slog.String("service", s.name), slog.String("status", status.String()))
	s.health.SetServingStatus(s.name, status)
}

// Stop marks every service NOT_SERVING and drains in-flight RPCs.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
	s.logger.Info("gRPC server gracefully stopped.", slog.String("service", s.name))
}
