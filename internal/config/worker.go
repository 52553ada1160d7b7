package config

import (
	"fmt"
	"time"

	"github.com/rezkam/weekly/internal/env"
)

// WorkerConfig holds all configuration for the page provisioner binary.
type WorkerConfig struct {
	Notion           NotionConfig
	Ledger           LedgerConfig
	Roster           RosterConfig
	Time             TimeConfig
	Observability    ObservabilityConfig
	Interval         time.Duration `env:"WEEKLY_WORKER_INTERVAL"`
	OperationTimeout time.Duration `env:"WEEKLY_WORKER_OPERATION_TIMEOUT"`
}

// LoadWorkerConfig loads and validates worker configuration from environment.
func LoadWorkerConfig() (*WorkerConfig, error) {
	cfg := &WorkerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load worker config: %w", err)
	}

	return cfg, nil
}
