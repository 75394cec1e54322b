package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophfeed/internal/client/cli"
	"github.com/dmitrijs2005/gophfeed/internal/client/config"
	"github.com/dmitrijs2005/gophfeed/internal/flagx"
	"github.com/dmitrijs2005/gophfeed/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	l := logging.New(os.Stderr, cfg.LogLevel, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, l)
	root := app.NewRootCommand()
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.ArgNames))

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
