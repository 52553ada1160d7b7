package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rezkam/weekly/internal/domain"
)

// DefaultRosterPath is used when WEEKLY_ROSTER_FILE is unset.
const DefaultRosterPath = "roster.yaml"

// RosterConfig locates the member roster file.
type RosterConfig struct {
	Path string `env:"WEEKLY_ROSTER_FILE"`
}

// Load reads the roster file.
func (c *RosterConfig) Load() ([]domain.Member, error) {
	path := c.Path
	if path == "" {
		path = DefaultRosterPath
	}
	return LoadRoster(path)
}

type rosterFile struct {
	Members []domain.Member `yaml:"members"`
}

// LoadRoster reads a YAML roster of the form:
//
//	members:
//	  - id: alice
//	    name: Alice
//
// Member order is kept; it is the order of regions on new weekly pages.
func LoadRoster(path string) ([]domain.Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return ParseRoster(data)
}

// ParseRoster decodes and validates roster YAML. A member without a name
// uses its ID as the name.
func ParseRoster(data []byte) ([]domain.Member, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if len(f.Members) == 0 {
		return nil, errors.New("roster has no members")
	}

	seen := make(map[string]bool, len(f.Members))
	members := make([]domain.Member, 0, len(f.Members))
	for i, m := range f.Members {
		m.ID = strings.TrimSpace(m.ID)
		m.Name = strings.TrimSpace(m.Name)
		if m.ID == "" {
			return nil, fmt.Errorf("roster member %d has no id", i+1)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate roster member id %q", m.ID)
		}
		seen[m.ID] = true
		if m.Name == "" {
			m.Name = m.ID
		}
		members = append(members, m)
	}
	return members, nil
}
