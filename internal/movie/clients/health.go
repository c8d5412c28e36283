package clients

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthChecker queries the grpc.health.v1 service of one upstream store.
type HealthChecker struct {
	name    string
	service string
	conn    *grpc.ClientConn
	client  healthpb.HealthClient
	logger  *slog.Logger
}

// NewHealthChecker creates a checker for the gRPC server at addr. service is
// the name the upstream registered its health status under. The connection is
// established lazily on the first Check.
func NewHealthChecker(name, addr, service string, logger *slog.Logger) (*HealthChecker, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Error("Failed to create gRPC client", slog.String("upstream", name), slog.String("address", addr), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create grpc client for %s at %s: %w", name, addr, err)
	}
	return &HealthChecker{
		name:    name,
		service: service,
		conn:    conn,
		client:  healthpb.NewHealthClient(conn),
		logger:  logger,
	}, nil
}

func (h *HealthChecker) Name() string {
	return h.name
}

// Check returns nil when the upstream reports SERVING.
func (h *HealthChecker) Check(ctx context.Context) error {
	res, err := h.client.Check(ctx, &healthpb.HealthCheckRequest{Service: h.service})
	if err != nil {
		h.logger.WarnContext(ctx, "Upstream health check failed", slog.String("upstream", h.name), slog.String("error", err.Error()))
		return fmt.Errorf("health check of %s failed: %w", h.name, err)
	}
	if res.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%s is %s", h.name, res.GetStatus())
	}
	return nil
}

func (h *HealthChecker) Close() error {
	h.logger.Info("Closing gRPC connection", slog.String("upstream", h.name))
	return h.conn.Close()
}
