// Package config provides centralized configuration management for the
// cellstats pipeline. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CELLSTATS_* for namespacing:
//
//	CELLSTATS_INPUT_PATH=cells.csv
//	CELLSTATS_INPUT_FORMAT=csv
//	CELLSTATS_LOGGING_LEVEL=info
//	CELLSTATS_OUTPUT_DIR=reports
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
