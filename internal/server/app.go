// Package server wires storage, the domain services and both transports
// together and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/factkeeper/internal/backup"
	"github.com/dmitrijs2005/factkeeper/internal/config"
	"github.com/dmitrijs2005/factkeeper/internal/facts"
	"github.com/dmitrijs2005/factkeeper/internal/gate"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/moderation"
	"github.com/dmitrijs2005/factkeeper/internal/reactions"
	"github.com/dmitrijs2005/factkeeper/internal/seed"
	"github.com/dmitrijs2005/factkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/factkeeper/internal/server/services"
	"github.com/dmitrijs2005/factkeeper/internal/storage"
	"github.com/dmitrijs2005/factkeeper/internal/trivia"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/factkeeper/internal/server/grpc"
)

var openStorage = storage.Open

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager storage.Manager
	http    *httpapi.HTTPServer
	grpc    *gs.GRPCServer
}

// NewApp opens the configured backend and builds both servers.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	m, err := openStorage(ctx, storage.Options{
		Backend:     c.StorageBackend,
		LocalDSN:    c.LocalDSN,
		DatabaseDSN: c.DatabaseDSN,
		KeyPrefix:   c.KeyPrefix,
		Seed:        seed.Facts(),
	})
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	tb, err := trivia.NewBuilder()
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	repo := facts.NewRepository(m, logger)
	sessions := services.NewSessionService(gate.NewGate(m.Values(), logger), c, logger)

	var backups gs.Snapshotter
	if c.S3Bucket != "" {
		backups = backup.NewService(repo, c, logger)
	}

	return &App{
		config:  c,
		logger:  logger,
		manager: m,
		http:    httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, repo, reactions.NewService(m, logger), tb),
		grpc:    gs.NewGRPCServer(c.EndpointAddrGRPC, logger, sessions, repo, moderation.NewWorkflow(m, logger), backups),
	}, nil
}

// Run serves until ctx is cancelled, SIGINT/SIGTERM arrives or either
// server fails. Storage is closed on the way out.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.StorageBackend)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(ctx) })
	g.Go(func() error { return app.grpc.Run(ctx) })

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}
	if cerr := app.manager.Close(); cerr != nil {
		app.logger.Error(ctx, "close storage", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
