// Package server assembles the feed service: storage, migrations, avatar
// signing and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/dmitrijs2005/gophfeed/internal/server/config"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophfeed/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophfeed/internal/server/grpc"
)

// seams for tests
var (
	openDB         = repomanager.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	feedService *services.FeedService
	userService *services.UserService
}

// NewApp connects to the database, applies migrations and builds the
// services. The caller must Close the returned App.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	avatars := services.NewAvatarStore(c)

	return &App{
		config:      c,
		logger:      l,
		db:          db,
		feedService: services.NewFeedService(db, rm, c, avatars),
		userService: services.NewUserService(db, rm, c, avatars),
	}, nil
}

// Users exposes account management for admin tooling.
func (app *App) Users() *services.UserService {
	return app.userService
}

// Run serves gRPC until ctx is done or the server fails.
func (app *App) Run(ctx context.Context) error {

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	srv := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.feedService, app.config.SecretKey)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) Close() error {
	return app.db.Close()
}
