// =============================================================================
// Sales Computation - Configuration Module
// =============================================================================
//
// This module loads the optional application configuration file. Every
// setting has a default, so the tool runs without any configuration file.
//
// CONFIGURATION FILE (YAML):
//   output_file: SalesResults.txt
//   log_level: warn
//   workbook:
//     catalogue_sheet: Prices
//     sales_sheet: Sales
//
// PRECEDENCE:
//   command-line flags > configuration file > defaults
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/computesales/internal/logging"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultOutputFile is the results file, relative to the working directory.
	DefaultOutputFile = "SalesResults.txt"

	// DefaultLogLevel keeps stderr quiet unless something was skipped.
	DefaultLogLevel = "warn"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// OutputFile is the path of the results file. It is overwritten on every
	// successful run.
	// Default: "SalesResults.txt"
	OutputFile string `yaml:"output_file"`

	// LogLevel controls the verbosity of diagnostics on stderr.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// Workbook contains settings for .xlsx input files.
	Workbook WorkbookSettings `yaml:"workbook"`
}

// WorkbookSettings selects the sheets read from .xlsx inputs.
// An empty sheet name means the first sheet of the workbook.
type WorkbookSettings struct {
	CatalogueSheet string `yaml:"catalogue_sheet"`
	SalesSheet     string `yaml:"sales_sheet"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// LOADING
// =============================================================================

// LoadConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path returns
//     the defaults without touching the filesystem.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed, or validated.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.OutputFile) == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// validate checks settings that have no safe fallback.
func validate(cfg *Config) error {
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
