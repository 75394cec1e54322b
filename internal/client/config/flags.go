package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the feed server
//	-d string   cache database file
//	-l int      number of cached tweets read on launch
//	-t int      request timeout in seconds
//	-k string   access token
//	-v string   log level
//
// Note: args are filtered with flagx.FilterArgs first, so subcommands and
// flags owned by other components pass through untouched.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l", "-t", "-k", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "cache database file")
	fs.IntVar(&cfg.CacheReadLimit, "l", cfg.CacheReadLimit, "cached tweets shown on launch")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.AccessToken, "k", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
