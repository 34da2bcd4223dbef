package simulator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes the events a simulator run produces.
type Profile struct {
	// TagCount is the size of the tag pool events are drawn from.
	TagCount  int      `yaml:"tagCount"`
	TagPrefix string   `yaml:"tagPrefix"`
	Sources   []string `yaml:"sources"`
	Types     []string `yaml:"types"`

	// Schedule is a cron spec, e.g. "@every 2s" or "*/1 * * * *".
	Schedule  string `yaml:"schedule"`
	BatchSize int    `yaml:"batchSize"`

	// ReportEvery renders the dashboard after this many ticks. Zero disables it.
	ReportEvery int `yaml:"reportEvery"`
	TrendWindow int `yaml:"trendWindow"`
}

// DefaultProfile returns the profile used when no file is given.
func DefaultProfile() Profile {
	return Profile{
		TagCount:    12,
		TagPrefix:   "NFC-",
		Sources:     []string{"gate-a", "gate-b", "warehouse", "lobby"},
		Types:       []string{"check-in", "alert", "status"},
		Schedule:    "@every 2s",
		BatchSize:   1,
		ReportEvery: 5,
		TrendWindow: 40,
	}
}

// LoadProfile reads a YAML profile. Fields left out keep their defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}

// Validate reports the first unusable setting.
func (p Profile) Validate() error {
	switch {
	case p.TagCount <= 0:
		return fmt.Errorf("tagCount must be positive")
	case len(p.Sources) == 0:
		return fmt.Errorf("at least one source is required")
	case len(p.Types) == 0:
		return fmt.Errorf("at least one type is required")
	case p.Schedule == "":
		return fmt.Errorf("schedule is required")
	case p.BatchSize <= 0:
		return fmt.Errorf("batchSize must be positive")
	case p.ReportEvery < 0:
		return fmt.Errorf("reportEvery must not be negative")
	}
	for _, s := range p.Sources {
		if s == "" {
			return fmt.Errorf("sources must not be empty strings")
		}
	}
	for _, t := range p.Types {
		if t == "" {
			return fmt.Errorf("types must not be empty strings")
		}
	}
	return nil
}
