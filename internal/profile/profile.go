// Package profile loads YAML profiles carrying default flag values for
// checksum runs, so recurring invocations don't need to repeat them.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the YAML configuration for checksum profiles
type Config struct {
	Version  int                `yaml:"version"`
	Default  *Options           `yaml:"default"`
	Profiles map[string]Options `yaml:"profiles"`
}

// Options represents the options for a single profile
type Options struct {
	Workers         int      `yaml:"workers"`
	OutputPath      string   `yaml:"output"`
	IncludePatterns []string `yaml:"include"`
	ExcludePatterns []string `yaml:"exclude"`
	Verbose         bool     `yaml:"verbose"`
	Quiet           bool     `yaml:"quiet"`
}

// FindProfileFile searches for a profile file in known locations
func FindProfileFile(explicitPath string) (string, error) {
	// check known locations in order
	locations := []string{
		explicitPath,    // explicitly specified file
		"profiles.yaml", // current directory
	}

	// add user home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations,
			filepath.Join(home, ".config", "hashbrr", "profiles.yaml"), // ~/.config/hashbrr/
			filepath.Join(home, ".hashbrr", "profiles.yaml"),           // ~/.hashbrr/
		)
	}

	// find first existing profile file
	for _, loc := range locations {
		if loc == "" {
			continue
		}
		if _, err := os.Stat(loc); err == nil {
			return loc, nil
		}
	}

	return "", fmt.Errorf("could not find profile file in known locations")
}

// Load loads profiles from a config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read profile config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse profile config: %w", err)
	}

	if config.Version != 1 {
		return nil, fmt.Errorf("unsupported profile config version: %d", config.Version)
	}

	if len(config.Profiles) == 0 {
		return nil, fmt.Errorf("no profiles defined in config")
	}

	return &config, nil
}

// GetProfile returns a profile by name, merged with default settings
func (c *Config) GetProfile(name string) (*Options, error) {
	prof, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}

	// if we have defaults, merge them with the profile
	if c.Default != nil {
		merged := *c.Default // create a copy of defaults

		// override defaults with profile-specific values
		if prof.Workers != 0 {
			merged.Workers = prof.Workers
		}
		if prof.OutputPath != "" {
			merged.OutputPath = prof.OutputPath
		}
		if len(prof.IncludePatterns) > 0 {
			merged.IncludePatterns = prof.IncludePatterns
		}
		if len(prof.ExcludePatterns) > 0 {
			merged.ExcludePatterns = prof.ExcludePatterns
		}

		// explicit bool overrides
		if prof.Verbose != merged.Verbose {
			merged.Verbose = prof.Verbose
		}
		if prof.Quiet != merged.Quiet {
			merged.Quiet = prof.Quiet
		}

		return &merged, nil
	}

	// if no defaults, just return the profile
	return &prof, nil
}
