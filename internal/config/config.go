// Package config handles promptgen configuration loading.
//
// The config file is optional. When none is found the built-in defaults
// reproduce the historical output exactly (model "deepseek-r1", stream
// false, ASCII-escaped JSON).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultModel is the model name stamped on every prompt record.
const DefaultModel = "deepseek-r1"

// ErrNoConfig is returned by [FindConfig] when no explicit path was given
// and none of the default search paths exist.
var ErrNoConfig = errors.New("no config file found")

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./promptgen.yaml, ~/.config/promptgen/config.yaml, /etc/promptgen/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"promptgen.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "promptgen", "config.yaml"))
	}

	paths = append(paths, "/etc/promptgen/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns [ErrNoConfig] (wrapped) if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w (searched: %v)", ErrNoConfig, DefaultSearchPaths())
}

// Config holds all promptgen configuration.
type Config struct {
	// Model is written into the "model" field of every prompt record.
	Model string `yaml:"model" validate:"required"`
	// Stream is written into the "stream" field of every prompt record.
	Stream bool `yaml:"stream"`
	// ASCIIOutput escapes every non-ASCII character in the output JSON
	// as \uXXXX, matching the byte layout downstream consumers expect.
	ASCIIOutput bool   `yaml:"ascii_output"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format" validate:"omitempty,oneof=text json"`
}

// Load reads configuration from a YAML file. Fields absent from the file
// keep their [Default] values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Model:       DefaultModel,
		Stream:      false,
		ASCIIOutput: true,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Validate checks the configuration for values the generator cannot use.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
