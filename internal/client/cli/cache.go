package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// CacheOptions holds flags for the cache command.
type CacheOptions struct {
	*RootOptions
	Limit int
}

func (a *App) newCacheCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CacheOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Print the cached timeline without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCache(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "number", "n", 0, "number of tweets to print (default: configured cache read limit)")

	return cmd
}

func (a *App) runCache(ctx context.Context, cmd *cobra.Command, opts *CacheOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := a.openCache(ctx, a.config.CacheDSN)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	limit := opts.Limit
	if limit <= 0 {
		limit = a.config.CacheReadLimit
	}

	feed, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		return RenderFeedJSON(w, feed)
	}

	synced, ok, err := store.LastSynced(ctx)
	if err != nil {
		a.log.Warn(ctx, "read last sync time", "error", err)
	}
	if ok {
		stored, err := store.Count(ctx)
		if err != nil {
			return fmt.Errorf("read cache: %w", err)
		}
		fmt.Fprintf(w, "-- cached timeline, %d stored, last synced %s\n", stored, synced.UTC().Format(timeLayout))
	} else {
		fmt.Fprintln(w, "-- cached timeline, never synced")
	}
	return RenderFeed(w, feed)
}
