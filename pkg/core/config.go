// pkg/core/config.go
package core

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when no --config flag is given
const DefaultConfigPath = "libsqlite.yaml"

// Config holds libsqlite build and packaging configuration
type Config struct {
	Library     string        `yaml:"library" validate:"required,alphanum"`
	Flake       string        `yaml:"flake" validate:"required"`
	Attribute   string        `yaml:"attribute" validate:"required"`
	DistDir     string        `yaml:"dist_dir" validate:"required"`
	Concurrency int           `yaml:"concurrency" validate:"min=1,max=8"`
	BakedPath   string        `yaml:"baked_path"`
	Archive     bool          `yaml:"archive"`
	Debug       bool          `yaml:"debug"`
	Package     PackageConfig `yaml:"package"`
}

// PackageConfig describes the distributed package metadata
type PackageConfig struct {
	Name        string `yaml:"name" validate:"required"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Manifest    string `yaml:"manifest"`
	Readme      string `yaml:"readme"`
}

var validate = validator.New()

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Library:     "sqlite3",
		Flake:       ".",
		Attribute:   "libsqlite3",
		DistDir:     "dist",
		Concurrency: 2,
		Package: PackageConfig{
			Name:     "@effect-native/libsqlite",
			Manifest: "package.json",
			Readme:   "README.md",
		},
	}
}

// FlakeRef returns the installable passed to the build backend, e.g. ".#libsqlite3"
func (c *Config) FlakeRef() string {
	return c.Flake + "#" + c.Attribute
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from file. Fields absent from the file keep
// their default values; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
