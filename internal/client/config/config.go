package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the gophfeed terminal client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the feed gRPC endpoint.
//   - CacheDSN: SQLite database file holding the timeline cache.
//   - CacheReadLimit: how many cached tweets are shown on launch.
//   - RequestTimeout: upper bound for every remote call.
//   - AccessToken: bearer token sent with every call.
//   - PersistComposed: write published tweets to the cache immediately.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr string
	CacheDSN           string
	CacheReadLimit     int
	RequestTimeout     time.Duration
	AccessToken        string
	PersistComposed    bool
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.CacheDSN = "feed.db"
	c.CacheReadLimit = 50
	c.RequestTimeout = 10 * time.Second
	c.AccessToken = ""
	c.PersistComposed = false
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from os.Args. See LoadConfigFrom.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Args[1:])
}

// LoadConfigFrom applies defaults, then overlays values from JSON (if
// present) and command-line flags (if present). Later sources take
// precedence over earlier ones. Malformed input panics.
func LoadConfigFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

// ArgNames lists every command-line flag this package owns, including the
// config file flags, so a command tree can strip them before parsing.
var ArgNames = []string{"-a", "-d", "-l", "-t", "-k", "-v", "-c", "-config", "--config"}
