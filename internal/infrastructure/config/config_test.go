package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeConfig writes content to a temporary config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
registry:
  default_variant: "espresso"
  unknown_variant: "reject"
prototypes:
  complex:
    name: "Office Bean-to-Cup"
    settings:
      cup_ml: 250
      grinder:
        burr: "conical"
        steps: 40
    accessories: ["milk frother"]
  espresso:
    settings:
      profile: [92, 93, 94]
logging:
  level: "debug"
  format: "text"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Registry.DefaultVariant != "espresso" {
		t.Errorf("Registry.DefaultVariant = %q, want %q", cfg.Registry.DefaultVariant, "espresso")
	}
	if cfg.Registry.UnknownVariant != "reject" {
		t.Errorf("Registry.UnknownVariant = %q, want %q", cfg.Registry.UnknownVariant, "reject")
	}

	wantComplex := PrototypeConfig{
		Name: "Office Bean-to-Cup",
		Settings: map[string]any{
			"cup_ml":  250,
			"grinder": map[string]any{"burr": "conical", "steps": 40},
		},
		Accessories: []string{"milk frother"},
	}
	if diff := cmp.Diff(wantComplex, cfg.Prototypes["complex"]); diff != "" {
		t.Errorf("Prototypes[complex] mismatch (-want +got):\n%s", diff)
	}

	profile, ok := cfg.Prototypes["espresso"].Settings["profile"].([]any)
	if !ok || len(profile) != 3 {
		t.Errorf("espresso profile = %#v, want []any of 3", cfg.Prototypes["espresso"].Settings["profile"])
	}

	// Unset values keep their defaults
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Logging.Output = %q, want %q", cfg.Logging.Output, "stderr")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
registry:
  default_variant: ""
  unknown_variant: "explode"
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("Load() expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "registry.default_variant") ||
		!strings.Contains(err.Error(), "registry.unknown_variant") {
		t.Errorf("Load() error = %v, want both registry errors", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BREWCORE_REGISTRY_DEFAULT_VARIANT", "complex")
	t.Setenv("BREWCORE_REGISTRY_UNKNOWN_VARIANT", "reject")
	t.Setenv("BREWCORE_LOGGING_LEVEL", "warn")
	t.Setenv("BREWCORE_LOGGING_FORMAT", "text")
	t.Setenv("BREWCORE_LOGGING_OUTPUT", "stdout")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	want := &Config{
		Registry: RegistryConfig{
			DefaultVariant: "complex",
			UnknownVariant: "reject",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stdout",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFromEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvOverrides_OverFile(t *testing.T) {
	t.Setenv("BREWCORE_LOGGING_LEVEL", "error")

	cfg, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "empty default variant",
			modify:  func(c *Config) { c.Registry.DefaultVariant = " " },
			wantErr: "registry.default_variant",
		},
		{
			name:    "bad policy",
			modify:  func(c *Config) { c.Registry.UnknownVariant = "panic" },
			wantErr: "registry.unknown_variant",
		},
		{
			name: "empty prototype key",
			modify: func(c *Config) {
				c.Prototypes = map[string]PrototypeConfig{"": {}}
			},
			wantErr: "empty variant name",
		},
		{
			name:    "bad log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "bad log output",
			modify:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: "logging.output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Registry.DefaultVariant != "simple" {
		t.Errorf("default Registry.DefaultVariant = %q, want %q", cfg.Registry.DefaultVariant, "simple")
	}
	if cfg.Registry.UnknownVariant != "fallback" {
		t.Errorf("default Registry.UnknownVariant = %q, want %q", cfg.Registry.UnknownVariant, "fallback")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("default Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}
