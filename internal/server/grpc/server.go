// Package grpc serves the admin API over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/factkeeper/internal/adminapi"
	"github.com/dmitrijs2005/factkeeper/internal/backup"
	"github.com/dmitrijs2005/factkeeper/internal/facts"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/moderation"
	"github.com/dmitrijs2005/factkeeper/internal/server/services"
	"google.golang.org/grpc"
)

// Snapshotter stores a backup and returns where it went.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*backup.Result, error)
}

type GRPCServer struct {
	adminapi.UnimplementedAdminServiceServer
	address    string
	logger     logging.Logger
	sessions   *services.SessionService
	facts      *facts.Repository
	moderation *moderation.Workflow
	backups    Snapshotter
}

func NewGRPCServer(a string, l logging.Logger, ss *services.SessionService, fr *facts.Repository,
	mw *moderation.Workflow, b Snapshotter) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		sessions:   ss,
		facts:      fr,
		moderation: mw,
		backups:    b,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))

	// registers service
	adminapi.RegisterAdminServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
