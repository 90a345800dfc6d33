// Package fieldfilter holds the shared configuration for the fieldfilter
// command line tool. The parsing library itself lives in the filter and
// tokenizer packages and does not read configuration.
package fieldfilter

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the fieldfilter configuration
type Config struct {
	// Document is the default document file the get command reads when no
	// path is given on the command line
	Document string       `yaml:"document"`
	Output   OutputConfig `yaml:"output"`
}

// OutputConfig represents output settings
type OutputConfig struct {
	// Format is "yaml" (render the selected subtree) or "raw" (print
	// scalar values without quoting or markers)
	Format string `yaml:"format"`
	// Color disables colored output when false; nil means auto
	Color *bool `yaml:"color"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if the file doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	switch config.Output.Format {
	case "yaml", "raw":
	default:
		return fmt.Errorf("%w: output.format '%s' is invalid: must be one of yaml, raw", ErrConfigValidation, config.Output.Format)
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "yaml",
		},
	}
}

// applyDefaults fills in defaults for missing values
func applyDefaults(config *Config) {
	if config.Output.Format == "" {
		config.Output.Format = "yaml"
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})

	return s
}

// expandConfigEnvVars expands environment variables in config values
func expandConfigEnvVars(config *Config) {
	config.Document = expandEnvVars(config.Document)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
