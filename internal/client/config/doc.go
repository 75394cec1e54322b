// Package config loads runtime configuration for the gophfeed client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the feed gRPC endpoint
//	-d string   cache database file
//	-l int      cached tweets read on launch
//	-t int      request timeout (seconds)
//	-k string   access token
//	-v string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds. persist_composed is only settable here:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "cache_dsn": "feed.db",
//	  "cache_read_limit": 50,
//	  "request_timeout": "10s",
//	  "access_token": "...",
//	  "persist_composed": false,
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
