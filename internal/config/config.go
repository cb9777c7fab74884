// Package config loads application configuration from the environment.
//
// Variables use the CENIK_ prefix and map to nested fields with underscores,
// e.g. CENIK_SERVER_ADDR -> Config.Server.Addr. A .env file in the working
// directory is loaded first if present.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CENIK_"

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig groups HTTP server settings.
type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
}

// Load reads configuration from the environment over built-in defaults and
// validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Path: "cenik.sqlite3"},
		Log:      LogConfig{Level: "info"},
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
