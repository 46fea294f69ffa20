// Package grpc hosts the transport boundary: a unary interceptor that
// resolves the caller's identity once per call, a guard that enforces
// per-method role requirements, and a thin server wrapper. The module
// defines no wire protocol of its own; whoever embeds it registers concrete
// services through the registrar callback.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/accesskeeper/internal/logging"
	"google.golang.org/grpc"
)

// ServiceRegistrar is re-exported so embedding packages can register
// services without importing google.golang.org/grpc themselves.
type ServiceRegistrar = grpc.ServiceRegistrar

type Server struct {
	address      string
	logger       logging.Logger
	register     func(grpc.ServiceRegistrar)
	interceptors []grpc.UnaryServerInterceptor
}

// NewServer wires a listener address, a service registration callback and
// the interceptor chain (identity resolution first, then the guard).
func NewServer(address string, logger logging.Logger, register func(grpc.ServiceRegistrar), interceptors ...grpc.UnaryServerInterceptor) *Server {
	return &Server{
		address:      address,
		logger:       logger.With("module", "grpc_server"),
		register:     register,
		interceptors: interceptors,
	}
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.interceptors...))

	if s.register != nil {
		s.register(srv)
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
