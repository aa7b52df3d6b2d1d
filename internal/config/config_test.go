package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noFiles(t *testing.T) Options {
	dir := t.TempDir()
	return Options{
		ConfigFile: filepath.Join(dir, "config.yaml"),
		EnvFile:    filepath.Join(dir, ".env"),
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(noFiles(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout.Read)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout.Shutdown)
	assert.Equal(t, "public/products.json", cfg.Catalog.Path)
	assert.True(t, cfg.Catalog.ServePublic)
	assert.Equal(t, "http://localhost:8080", cfg.Storefront.API.URL)
	assert.Equal(t, 10*time.Second, cfg.Storefront.Fetch.Timeout)
	assert.Equal(t, "unbounded", cfg.Storefront.Quantity.Policy)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Precedence(t *testing.T) {
	opts := noFiles(t)
	require.NoError(t, os.WriteFile(opts.ConfigFile, []byte(`
server:
  port: "9000"
catalog:
  path: data/catalog.json
log:
  level: debug
`), 0o644))
	require.NoError(t, os.WriteFile(opts.EnvFile, []byte(
		"STOREFRONT_SERVER_PORT=9100\nSTOREFRONT_STOREFRONT_QUANTITY_POLICY=floor\nUNRELATED=1\n"), 0o644))
	t.Setenv("STOREFRONT_SERVER_PORT", "9200")
	t.Setenv("STOREFRONT_STOREFRONT_FETCH_TIMEOUT", "0s")

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "9200", cfg.Server.Port, "process env wins")
	assert.Equal(t, "data/catalog.json", cfg.Catalog.Path, "yaml overrides defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "floor", cfg.Storefront.Quantity.Policy, ".env overrides defaults")
	assert.Zero(t, cfg.Storefront.Fetch.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"log level", "STOREFRONT_LOG_LEVEL", "verbose"},
		{"policy", "STOREFRONT_STOREFRONT_QUANTITY_POLICY", "sometimes"},
		{"port", "STOREFRONT_SERVER_PORT", "http"},
		{"api url", "STOREFRONT_STOREFRONT_API_URL", "not a url"},
		{"negative timeout", "STOREFRONT_STOREFRONT_FETCH_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load(noFiles(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	opts := noFiles(t)
	require.NoError(t, os.WriteFile(opts.ConfigFile, []byte("server: [unterminated"), 0o644))

	_, err := Load(opts)
	assert.Error(t, err)
}

func TestValidate_NormalizesCase(t *testing.T) {
	t.Setenv("STOREFRONT_LOG_LEVEL", "WARN")
	t.Setenv("STOREFRONT_STOREFRONT_QUANTITY_POLICY", "Remove")

	cfg, err := Load(noFiles(t))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "remove", cfg.Storefront.Quantity.Policy)
}
