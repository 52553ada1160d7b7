package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone database for minimal images
)

// TimeConfig sets the location that week boundaries and deadlines are
// computed in.
type TimeConfig struct {
	// Timezone is an IANA name such as "Asia/Shanghai". Empty means UTC.
	Timezone string `env:"WEEKLY_TIMEZONE"`
}

// Location resolves Timezone.
func (c *TimeConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid WEEKLY_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate validates the time configuration.
func (c *TimeConfig) Validate() error {
	_, err := c.Location()
	return err
}
