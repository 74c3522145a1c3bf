// Package config provides configuration management for the lrol toolchain.
//
// Configuration is read from YAML files with environment variable overrides.
// Every field has a default, so the command line tools run without any
// configuration file at all.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("lrol.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("lrol.yaml")
//
//  3. From defaults with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention LROL_SECTION_FIELD.
// For example:
//
//   - LROL_VALIDATION_WORKERS overrides validation.workers
//   - LROL_HISTORY_SQLITE_PATH overrides history.sqlite.path
//   - LROL_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// A .env file in the working directory is loaded first, without replacing
// variables that are already set. List values such as
// LROL_ANALYZER_COMPARISON_OPERATORS are comma separated.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("lrol.yaml")
//	if err != nil {
//	    return err
//	}
//
// Each command loads its own Config; there is no package-level instance.
//
// # Example Configuration
//
//	validation:
//	  workers: 8
//	  recursive: true
//	history:
//	  enabled: true
//	  backend: sqlite
//	  sqlite:
//	    driver: sqlite
//	    path: data/history.db
//	  retention:
//	    days: 30
//	    schedule: "0 3 * * *"
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
package config
