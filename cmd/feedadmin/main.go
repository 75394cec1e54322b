package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophfeed/internal/flagx"
	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/dmitrijs2005/gophfeed/internal/server"
	"github.com/dmitrijs2005/gophfeed/internal/server/admin"
	"github.com/dmitrijs2005/gophfeed/internal/server/config"
)

func main() {

	cfg := config.LoadConfig()
	l := logging.New(os.Stderr, cfg.LogLevel, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.NewApp(ctx, cfg, l)
	if err != nil {
		l.Error(ctx, err.Error())
		stop()
		os.Exit(1)
	}

	root := admin.NewRootCommand(app.Users(), os.Stdout)
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.ArgNames))

	err = root.ExecuteContext(ctx)
	_ = app.Close()
	if err != nil {
		stop()
		os.Exit(1)
	}
}
