package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/dmitrijs2005/gophfeed/internal/server"
	"github.com/dmitrijs2005/gophfeed/internal/server/config"
)

func main() {

	cfg := config.LoadConfig()
	l := logging.New(os.Stdout, cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := server.NewApp(ctx, cfg, l)
	if err != nil {
		l.Error(ctx, err.Error())
		stop()
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		l.Error(ctx, err.Error())
	}
}
