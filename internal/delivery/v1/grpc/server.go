package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/profibuy/storefront/internal/cfg"
	"github.com/profibuy/storefront/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName — имя сервиса в grpc.health.v1 для проверок доступности бэкенда.
const ServiceName = "megashop.Storefront"

const probeTimeout = 5 * time.Second

// Prober проверяет, отвечает ли внешний бэкенд.
type Prober interface {
	Health(ctx context.Context) error
}

type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	cfg    *cfg.GRPCConfig
	logger logger.Logger
}

func NewGRPCServer(cfg *cfg.GRPCConfig, logger logger.Logger) *GRPCServer {
	s := &GRPCServer{
		server: grpc.NewServer(grpc.UnaryInterceptor(unaryLogger(logger))),
		health: health.NewServer(),
		cfg:    cfg,
		logger: logger,
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	// До первой проверки бэкенд считается недоступным.
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// WatchBackend проверяет бэкенд раз в interval и обновляет статус сервиса, пока жив ctx.
func (s *GRPCServer) WatchBackend(ctx context.Context, prober Prober, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := healthpb.HealthCheckResponse_UNKNOWN
	for {
		status := s.probe(ctx, prober)
		if status != last {
			s.logger.Infof("backend health: %s", status)
			last = status
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *GRPCServer) probe(ctx context.Context, prober Prober) healthpb.HealthCheckResponse_ServingStatus {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := prober.Health(probeCtx); err != nil {
		s.logger.Debugf("backend probe failed: %v", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus(ServiceName, status)
	return status
}

func (s *GRPCServer) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lis, err := net.Listen(s.cfg.NetworkMode, addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.server.Serve(lis)
}

func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

func (s *GRPCServer) Stop(ctx context.Context) error {
	// клиенты health-watch сразу получают NOT_SERVING
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof("gRPC server stopped gracefully")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		s.logger.Warnf("gRPC server forced to stop after timeout")
		return ctx.Err()
	}
}
