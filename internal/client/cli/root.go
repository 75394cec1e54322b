package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Config flags must be stripped
// from the arguments before Execute (see config.ArgNames).
func (a *App) NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gophfeed",
		Short: "gophfeed - a cached, paginated timeline",
		Long:  "Terminal client for the gophfeed timeline: cached on launch, refreshed from the server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.SetIn(a.in)
	cmd.SetOut(a.out)

	cmd.AddCommand(a.newTimelineCommand(opts))
	cmd.AddCommand(a.newCacheCommand(opts))

	return cmd
}
