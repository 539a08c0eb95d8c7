// Package config loads optional scheduling defaults from a cadence.yaml
// file: the work week, daily hours, and a fallback project start. Plan
// files override anything set here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks when --config is not given.
const DefaultPath = "cadence.yaml"

// Config holds project-wide scheduling defaults.
type Config struct {
	WorkDays     []int   `yaml:"work_days,omitempty"`     // weekday indices, 0 = Sunday
	HoursPerDay  float64 `yaml:"hours_per_day,omitempty"` // default daily capacity
	ProjectStart string  `yaml:"project_start,omitempty"` // YYYY-MM-DD
}

// Load reads a config file. A missing file at the default path is not
// an error; a missing file at an explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, wd := range cfg.WorkDays {
		if wd < 0 || wd > 6 {
			return nil, fmt.Errorf("%s: work day index out of range: %d", path, wd)
		}
	}
	return &cfg, nil
}
