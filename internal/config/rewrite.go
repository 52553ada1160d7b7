package config

import (
	"errors"
	"fmt"
	"time"
)

// Rewrite providers.
const (
	RewriteAnthropic = "anthropic"
	RewriteBedrock   = "bedrock"
)

// RewriteConfig configures the optional generative rewrite service.
// Leaving Provider empty disables rewriting; reports then use the
// deterministic rendering.
type RewriteConfig struct {
	Provider   string        `env:"WEEKLY_REWRITE_PROVIDER"`
	APIKey     string        `env:"WEEKLY_REWRITE_API_KEY"`
	BaseURL    string        `env:"WEEKLY_REWRITE_BASE_URL"`
	Region     string        `env:"WEEKLY_REWRITE_REGION"`
	Model      string        `env:"WEEKLY_REWRITE_MODEL"`
	MaxTokens  int           `env:"WEEKLY_REWRITE_MAX_TOKENS"`
	MaxRetries int           `env:"WEEKLY_REWRITE_MAX_RETRIES"`
	Timeout    time.Duration `env:"WEEKLY_REWRITE_TIMEOUT"`
}

// Enabled reports whether a rewrite provider is configured.
func (c *RewriteConfig) Enabled() bool {
	return c.Provider != ""
}

// Validate validates the rewrite configuration.
func (c *RewriteConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	var errs []error
	switch c.Provider {
	case RewriteAnthropic:
		if c.APIKey == "" {
			errs = append(errs, errors.New("WEEKLY_REWRITE_API_KEY is required for the anthropic provider"))
		}
	case RewriteBedrock:
	default:
		errs = append(errs, fmt.Errorf("unknown WEEKLY_REWRITE_PROVIDER: %s", c.Provider))
	}
	if c.Model == "" {
		errs = append(errs, errors.New("WEEKLY_REWRITE_MODEL is required when WEEKLY_REWRITE_PROVIDER is set"))
	}
	return errors.Join(errs...)
}
