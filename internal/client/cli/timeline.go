package cli

import (
	"bufio"
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophfeed/internal/client/timeline"
	"github.com/spf13/cobra"
)

func (a *App) newTimelineCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show the live timeline and read commands from stdin",
		Long: `Show the cached timeline immediately, replace it with the server's
newest page when it arrives and read commands from stdin:

  r        refresh
  m        load older tweets
  p <text> post a tweet (bare p reads a multi-line body)
  l        list the current timeline
  s        show state and source
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Format != "text" {
				return fmt.Errorf("timeline supports text output only, got %q", rootOpts.Format)
			}
			return a.runTimeline(cmd.Context(), cmd)
		},
	}
}

func (a *App) runTimeline(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	remote, err := a.dialRemote(a.config)
	if err != nil {
		return err
	}
	defer remote.Close()

	// a broken cache degrades to remote-only
	var store timeline.Cache
	if s, err := a.openCache(ctx, a.config.CacheDSN); err != nil {
		a.log.Warn(ctx, "cache unavailable", "dsn", a.config.CacheDSN, "error", err)
	} else {
		defer s.Close()
		store = s
	}

	ctrl := timeline.NewController(store, remote, a.log, timeline.Options{
		CacheReadLimit:  a.config.CacheReadLimit,
		PersistComposed: a.config.PersistComposed,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := &syncWriter{w: cmd.OutOrStdout()}
	ctrl.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range ctrl.Events() {
			_ = RenderEvent(out, ev)
		}
	}()

	runREPL(ctx, ctrl, bufio.NewReader(cmd.InOrStdin()), out, interactive())

	cancel()
	wg.Wait()
	return nil
}
