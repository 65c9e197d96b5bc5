// Package bundle locates release bundles and handles the packaging steps
// around the integrity core: resolving which bundle root to operate on,
// staging copies, and zipping verified trees.
package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked for in the working directory when no
// --config flag is given.
const DefaultConfigFile = "relcheck.yaml"

const defaultBundlePattern = "release-*"

// ConfigError means a bundle root or config file could not be resolved.
// It aborts the current step before any manifest work happens.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Config is the external configuration collaborator: it supplies default
// bundle-root and parent-directory values. It is loaded once per
// invocation and passed by parameter, never read ambiently.
type Config struct {
	BundleRoot    string   `yaml:"bundle_root"`
	ReleaseParent string   `yaml:"release_parent"`
	BundlePattern string   `yaml:"bundle_pattern"`
	Exclude       []string `yaml:"exclude"`
}

// Pattern returns the release-bundle directory naming glob.
func (c *Config) Pattern() string {
	if c.BundlePattern != "" {
		return c.BundlePattern
	}
	return defaultBundlePattern
}

// LoadConfig reads a yaml config file. An absent file is only an error
// when the path was given explicitly; otherwise a zero config is returned
// and resolution falls through to explicit arguments.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return &Config{}, nil
		}
		return nil, &ConfigError{
			Path:   path,
			Reason: fmt.Sprintf("read config: %v", err),
		}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{
			Path:   path,
			Reason: fmt.Sprintf("parse config: %v", err),
		}
	}
	return &cfg, nil
}
