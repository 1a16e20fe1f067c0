// Package config handles loading and validating Brew Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with BREWCORE_* environment variables
//   - Validation of required fields
//   - Default value handling
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Registry.DefaultVariant)
package config
