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

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_http":   "www.example:9000",
		"database_dsn":         "postgres://vault",
		"storage_type":         "memory",
		"secret_key":           "my_secret_key",
		"encryption_key":       "a2V5",
		"encryption_key_param": "/vault/key",
		"aws_region":           "eu-central-1",
		"shutdown_timeout":     "1m",
		"log_level":            "warn",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", full}))

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://vault", cfg.DatabaseDSN)
		assert.Equal(t, "memory", cfg.StorageType)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, "a2V5", cfg.EncryptionKey)
		assert.Equal(t, "/vault/key", cfg.EncryptionKeyParam)
		assert.Equal(t, "eu-central-1", cfg.AWSRegion)
		assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("partial file keeps other fields", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"endpoint_addr_http": ":1",
			"shutdown_timeout":   int64(2 * time.Second),
		})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		assert.Equal(t, ":1", cfg.EndpointAddrHTTP)
		assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, StoragePostgres, cfg.StorageType)
		assert.Equal(t, "secretKey", cfg.SecretKey)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		cfg := &Config{EndpointAddrHTTP: "defaults:1234", SecretKey: "key"}
		require.NoError(t, parseJson(cfg, []string{"-a", ":5"}))

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		err := parseJson(&Config{}, []string{"-config", bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}
