package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_endpoint_addr": "www.example:9000",
		"request_timeout":      "15s",
		"cache_dsn":            "/tmp/feed.db",
		"access_token":         "secret",
		"persist_composed":     true,
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", pathFlag})

		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "/tmp/feed.db", cfg.CacheDSN)
		assert.Equal(t, "secret", cfg.AccessToken)
		assert.True(t, cfg.PersistComposed)
	})

	t.Run("absent keys keep earlier values", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-c", pathFlag})

		assert.Equal(t, 50, cfg.CacheReadLimit)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		cfg := &Config{
			ServerEndpointAddr: "defaults:1234",
			RequestTimeout:     42 * time.Second,
		}
		parseJson(cfg, nil)

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-config", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
