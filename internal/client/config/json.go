package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophfeed/internal/flagx"
	"github.com/dmitrijs2005/gophfeed/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from a zero value.
type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	CacheDSN           string          `json:"cache_dsn"`
	CacheReadLimit     *int            `json:"cache_read_limit"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	AccessToken        string          `json:"access_token"`
	PersistComposed    *bool           `json:"persist_composed"`
	LogLevel           string          `json:"log_level"`
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Only keys present in the file are applied. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigPath(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.CacheReadLimit != nil {
		cfg.CacheReadLimit = *jc.CacheReadLimit
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.AccessToken != "" {
		cfg.AccessToken = jc.AccessToken
	}
	if jc.PersistComposed != nil {
		cfg.PersistComposed = *jc.PersistComposed
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
