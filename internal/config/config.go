// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds all runtime configuration for the server process.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string `env:"SERVER_HOST,default=0.0.0.0"`
	Port            int    `env:"SERVER_PORT,default=8080"`
	ReadTimeoutSec  int    `env:"SERVER_READ_TIMEOUT,default=15"`
	WriteTimeoutSec int    `env:"SERVER_WRITE_TIMEOUT,default=15"`
}

// DatabaseConfig configures the Postgres connection. An empty DSN selects the
// in-memory store, which is only suitable for local development.
type DatabaseConfig struct {
	DSN                string `env:"DATABASE_URL"`
	MaxOpenConns       int    `env:"DATABASE_MAX_OPEN_CONNS,default=10"`
	MaxIdleConns       int    `env:"DATABASE_MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetimeSec int    `env:"DATABASE_CONN_MAX_LIFETIME,default=300"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=text"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}
