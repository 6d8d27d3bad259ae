// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Survey    string `json:"survey,omitempty"`     // Path to survey definition YAML file
	OutputDir string `json:"output_dir,omitempty"` // Output directory override

	// Document
	Locale       string `json:"locale,omitempty"`         // Questionnaire language: dutch or english
	Color        string `json:"color,omitempty"`          // Promote this colorize category to primary
	NoColor      string `json:"no_color,omitempty"`       // Disable this colorize category
	Draft        bool   `json:"draft,omitempty"`          // Add a draft watermark
	NoDate       bool   `json:"no_date,omitempty"`        // Suppress the date on the title page
	UseHouseFont bool   `json:"use_house_font,omitempty"` // Typeset with the house font instead of Computer Modern

	// Variants
	ReviewReferences bool `json:"review_references,omitempty"` // Build the internal review variant
	DVZReferences    bool `json:"dvz_references,omitempty"`    // Build the provenance reference variant

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed build information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: required fields are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Locale != "" && c.Locale != "dutch" && c.Locale != "english" {
		return fmt.Errorf("config error: 'locale' must be dutch or english, got %q", c.Locale)
	}

	if c.Color != "" && c.Color == c.NoColor {
		return fmt.Errorf("config error: 'color' and 'no_color' name the same category %q", c.Color)
	}

	if c.Survey != "" {
		if _, err := os.Stat(c.Survey); os.IsNotExist(err) {
			return fmt.Errorf("config error: survey file not found: %s", c.Survey)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Survey == "" {
		result.Survey = defaults.Survey
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Locale == "" {
		result.Locale = defaults.Locale
	}
	if result.Color == "" {
		result.Color = defaults.Color
	}
	if result.NoColor == "" {
		result.NoColor = defaults.NoColor
	}

	// Boolean fields: true in either source wins
	result.Draft = result.Draft || defaults.Draft
	result.NoDate = result.NoDate || defaults.NoDate
	result.UseHouseFont = result.UseHouseFont || defaults.UseHouseFont
	result.ReviewReferences = result.ReviewReferences || defaults.ReviewReferences
	result.DVZReferences = result.DVZReferences || defaults.DVZReferences
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
