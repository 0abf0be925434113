// Package config handles loading and validating toolkit configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (TOOLKIT_SECTION_KEY)
//   - Validation of required fields
//   - Default value handling
//
// The compare subcommand can run without a config file; Default()
// returns the built-in configuration with environment overrides applied.
//
// Security Considerations:
//   - Broker credentials should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Project.Path)
package config
