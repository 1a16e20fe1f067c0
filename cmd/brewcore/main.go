// Brew Core - prototype coffee machine registry
//
// This is the main entry point for the brewcore command. It builds one
// prototype per machine variant, produces the requested machines by
// cloning those prototypes, brews each of them, and finally clones the
// first produced machine to show that a copy of a copy behaves the same.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nerrad567/brew-core/internal/infrastructure/config"
	"github.com/nerrad567/brew-core/internal/infrastructure/logging"
	"github.com/nerrad567/brew-core/internal/machine"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// configEnvVar names the environment variable holding the config path.
const configEnvVar = "BREWCORE_CONFIG"

// defaultVariants are produced when no variants are given on the command line.
var defaultVariants = []string{"0", "1", "2"}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the brewcore command.
func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "brewcore [variant...]",
		Short: "Produce and brew coffee machines cloned from prototypes",
		Long: `Produce coffee machines by cloning registry prototypes and brew each one.

Variants are given as names (simple, complex, espresso) or identifiers
(0, 1, 2). With no arguments, one machine of each variant is produced.
Unknown variants follow the registry.unknown_variant policy.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), getConfigPath(configPath), args)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default $"+configEnvVar+")")

	return cmd
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation
//   - out: Destination for brew output
//   - configPath: YAML config path, or empty for defaults and environment
//   - args: Variant names or identifiers to produce
//
// Returns:
//   - error: nil on success, or error describing failure
func run(ctx context.Context, out io.Writer, configPath string, args []string) error {
	// Use default logger until config is loaded
	log := logging.Default()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Debug("configuration loaded", "path", configPath)

	opts, err := registryOptions(cfg)
	if err != nil {
		return fmt.Errorf("building registry options: %w", err)
	}

	registry := machine.NewRegistry(opts)
	registry.SetLogger(log.With("component", "registry"))
	if err := registry.Initialize(ctx); err != nil {
		return fmt.Errorf("initialising machine registry: %w", err)
	}

	if len(args) == 0 {
		args = defaultVariants
	}

	machines := make([]*machine.Machine, 0, len(args))
	for _, arg := range args {
		m, err := registry.ProduceByName(arg)
		if err != nil {
			return fmt.Errorf("producing %q: %w", arg, err)
		}
		machines = append(machines, m)
	}

	for _, m := range machines {
		if err := m.Brew(out); err != nil {
			return err
		}
	}

	// A clone of a produced machine brews exactly like its source.
	clone := machines[0].Clone()
	if err := clone.Brew(out); err != nil {
		return err
	}

	stats := registry.Stats()
	log.Info("brew run complete",
		"machines", len(machines)+1,
		"fallbacks", stats.Fallbacks,
	)
	return nil
}

// loadConfig loads the YAML file at path, or defaults plus environment
// overrides when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

// getConfigPath returns the configuration file path.
// The flag wins over BREWCORE_CONFIG; both empty means built-in defaults.
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(configEnvVar)
}
