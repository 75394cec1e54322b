package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-k string   JWT HMAC secret key
//	-p int      timeline page size
//	-t int      access token validity, hours
//	-v string   log level
//
// Notes:
//   - The function first filters args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Object storage settings are read from the JSON file only.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-k", "-p", "-t", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "secret key")
	fs.IntVar(&config.PageSize, "p", config.PageSize, "timeline page size")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Hours()), "access_token_validity_duration (in hours)")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Hour
}
