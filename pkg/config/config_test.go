package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HOST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("GIN_MODE", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Server.Mode)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 4000\n  host: 127.0.0.1\nlog:\n  format: console\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", cfg.Addr())
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "bad mode", mutate: func(c *Config) { c.Server.Mode = "prod" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "no timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
