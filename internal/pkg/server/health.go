package server

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the service name the health endpoint reports on, next to the
// overall "" service.
const HealthService = "quiz.Quiz"

// ServeHealth runs the gRPC health service on ln until ctx is done. Both services
// report SERVING while it runs and NOT_SERVING while it shuts down.
func ServeHealth(ctx context.Context, ln net.Listener) error {
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(HealthService, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)
	logger.WithField("addr", ln.Addr().String()).Info("health service listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- grpcServer.Serve(ln)
	}()
	select {
	case <-ctx.Done():
		hs.Shutdown()
		grpcServer.GracefulStop()
		<-errCh
		logger.Info("health service stopped")
		return nil
	case err := <-errCh:
		return errors.Wrap(err, "serve health failed")
	}
}
