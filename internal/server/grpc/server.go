// Package grpc exposes the standard gRPC health service for the host
// adapter. The overall status and the "tripkeeper" service status follow the
// engine: NOT_SERVING until it has initialized, SERVING afterwards.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name registered next to the overall "".
const ServiceName = "tripkeeper"

const defaultPollInterval = time.Second

type HealthServer struct {
	address      string
	ready        func() bool
	logger       logging.Logger
	health       *health.Server
	pollInterval time.Duration
}

func NewHealthServer(a string, l logging.Logger, ready func() bool) *HealthServer {
	return &HealthServer{
		address:      a,
		ready:        ready,
		logger:       l.With("module", "grpc_server"),
		health:       health.NewServer(),
		pollInterval: defaultPollInterval,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.sync()

	go func() {
		t := time.NewTicker(s.pollInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-t.C:
				s.sync()
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

func (s *HealthServer) sync() {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if s.ready() {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}
