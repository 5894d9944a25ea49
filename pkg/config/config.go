package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const ConfigPathEnvVar = "CONFIG_PATH"

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Store  StoreConfig  `koanf:"store"`
	Log    LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Mode            string        `koanf:"mode"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            3000,
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: StoreMemory,
			DSN:    ":memory:",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envMappings maps environment variables to config paths.
var envMappings = map[string]string{
	"host":             "server.host",
	"port":             "server.port",
	"gin_mode":         "server.mode",
	"shutdown_timeout": "server.shutdown_timeout",
	"store_driver":     "store.driver",
	"store_dsn":        "store.dsn",
	"log_level":        "log.level",
	"log_format":       "log.format",
}

func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	// unknown variables are dropped
	return ""
}

// Load reads defaults, then the YAML file named by CONFIG_PATH (if set),
// then environment variables. Later sources win.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("store.driver must be %s or %s, got %q", StoreMemory, StoreSQLite, c.Store.Driver))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
