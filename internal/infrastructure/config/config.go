package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "BREWCORE_"

// Config is the root configuration structure for Brew Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Registry   RegistryConfig             `yaml:"registry" envPrefix:"REGISTRY_"`
	Prototypes map[string]PrototypeConfig `yaml:"prototypes"`
	Logging    LoggingConfig              `yaml:"logging" envPrefix:"LOGGING_"`
}

// RegistryConfig contains machine registry behaviour settings.
type RegistryConfig struct {
	// DefaultVariant is the variant produced when an unknown one is
	// requested under the fallback policy.
	DefaultVariant string `yaml:"default_variant" env:"DEFAULT_VARIANT"`

	// UnknownVariant is the unknown-variant policy: "fallback" or "reject".
	UnknownVariant string `yaml:"unknown_variant" env:"UNKNOWN_VARIANT"`
}

// PrototypeConfig contains construction settings for one machine variant.
// The map key in Config.Prototypes is the variant name.
type PrototypeConfig struct {
	Name        string         `yaml:"name"`
	Settings    map[string]any `yaml:"settings"`
	Accessories []string       `yaml:"accessories"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	Output string `yaml:"output" env:"OUTPUT"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: BREWCORE_SECTION_KEY
// For example: BREWCORE_LOGGING_LEVEL, BREWCORE_REGISTRY_UNKNOWN_VARIANT
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadFromEnv builds configuration from defaults and environment variables
// only. It is used when no configuration file is given.
func LoadFromEnv() (*Config, error) {
	return finish(defaultConfig())
}

// finish applies environment overrides and validates.
func finish(cfg *Config) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			DefaultVariant: "simple",
			UnknownVariant: "fallback",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: BREWCORE_SECTION_KEY
func applyEnvOverrides(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment overrides: %w", err)
	}
	return nil
}

// Validate checks the configuration for errors.
//
// Variant names are not checked here; the machine registry owns the
// variant set and rejects unknown names when it is built.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Registry validation
	if strings.TrimSpace(c.Registry.DefaultVariant) == "" {
		errs = append(errs, "registry.default_variant is required")
	}
	switch strings.ToLower(c.Registry.UnknownVariant) {
	case "", "fallback", "reject":
	default:
		errs = append(errs, "registry.unknown_variant must be fallback or reject")
	}

	// Prototype validation
	for name := range c.Prototypes {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "prototypes must not contain an empty variant name")
		}
	}

	// Logging validation
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "text":
	default:
		errs = append(errs, "logging.format must be json or text")
	}
	switch strings.ToLower(c.Logging.Output) {
	case "", "stdout", "stderr":
	default:
		errs = append(errs, "logging.output must be stdout or stderr")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
