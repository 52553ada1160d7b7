package config

import (
	"fmt"
	"time"

	"github.com/rezkam/weekly/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	HTTP            HTTPConfig
	Notion          NotionConfig
	Rewrite         RewriteConfig
	Ledger          LedgerConfig
	Roster          RosterConfig
	Time            TimeConfig
	Observability   ObservabilityConfig
	AdminToken      string        `env:"WEEKLY_ADMIN_TOKEN"`
	ShutdownTimeout time.Duration `env:"WEEKLY_SHUTDOWN_TIMEOUT"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"WEEKLY_HTTP_HOST"`
	Port              string        `env:"WEEKLY_HTTP_PORT"`
	ReadTimeout       time.Duration `env:"WEEKLY_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"WEEKLY_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"WEEKLY_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"WEEKLY_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"WEEKLY_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"WEEKLY_HTTP_MAX_BODY_BYTES"`
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
