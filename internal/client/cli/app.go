package cli

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophfeed/internal/client/cache"
	"github.com/dmitrijs2005/gophfeed/internal/client/client"
	"github.com/dmitrijs2005/gophfeed/internal/client/config"
	"github.com/dmitrijs2005/gophfeed/internal/filex"
	"github.com/dmitrijs2005/gophfeed/internal/logging"
)

// App carries configuration and collaborators for the commands.
type App struct {
	config *config.Config
	log    logging.Logger
	in     io.Reader
	out    io.Writer

	// seams
	openCache  func(ctx context.Context, dsn string) (*cache.Store, error)
	dialRemote func(cfg *config.Config) (client.Client, error)
}

func NewApp(c *config.Config, l logging.Logger) *App {
	return &App{
		config:     c,
		log:        l.With("module", "cli"),
		in:         os.Stdin,
		out:        os.Stdout,
		openCache:  openCache,
		dialRemote: dialRemote,
	}
}

func openCache(ctx context.Context, dsn string) (*cache.Store, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}
	return cache.Open(ctx, dsn)
}

func dialRemote(cfg *config.Config) (client.Client, error) {
	return client.NewFeedClient(cfg.ServerEndpointAddr, cfg.AccessToken, cfg.RequestTimeout)
}

// syncWriter serializes writes from the REPL and the event printer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
