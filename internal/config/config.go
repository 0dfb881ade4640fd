// Package config loads the sheesh CLI configuration from TOML or YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no --config flag is given.
const EnvVar = "SHEESH_CONFIG"

// DefaultPath is tried last; a missing file there is not an error.
const DefaultPath = "./sheesh.toml"

// Config holds the complete CLI configuration
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text, json
}

// OutputConfig holds settings for command output
type OutputConfig struct {
	Format   string `toml:"format" yaml:"format"` // text, yaml, json
	Color    *bool  `toml:"color" yaml:"color"`
	Comments bool   `toml:"comments" yaml:"comments"` // show COMMENT tokens in `tokens`
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// UseColor reports whether diagnostics should be styled.
func (c *Config) UseColor() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// Load reads the configuration file at path. The format is chosen by
// extension: .toml, or .yaml/.yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q: %s", ext, path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve finds and loads the configuration. An explicit path wins, then
// $SHEESH_CONFIG, then DefaultPath. Only the default location may be absent,
// in which case Default() is returned.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
}

// Validate rejects values the CLI does not understand.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if !ValidOutputFormat(c.Output.Format) {
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	return nil
}

// ValidOutputFormat reports whether f names an AST output format.
func ValidOutputFormat(f string) bool {
	switch f {
	case "text", "yaml", "json":
		return true
	}
	return false
}
