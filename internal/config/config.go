// Package config loads optional survey configuration from a JSON file.
// Fields are pointers so a partial file only overrides what it names; the
// Get* methods supply defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/speleodata/cavemap/internal/survey"
	"github.com/speleodata/cavemap/internal/units"
)

// SurveyConfig is the JSON schema of a cavemap config file.
type SurveyConfig struct {
	Title          *string  `json:"title,omitempty"`
	DistanceUnits  *string  `json:"distance_units,omitempty"`
	AngleTolerance *float64 `json:"angle_tolerance,omitempty"`
	OutputDir      *string  `json:"output_dir,omitempty"`
	Views          []string `json:"views,omitempty"`
}

// Load reads and validates a SurveyConfig from a JSON file. Partial configs
// are safe: omitted fields keep their defaults.
func Load(path string) (*SurveyConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &SurveyConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field that is present.
func (c *SurveyConfig) Validate() error {
	if c.AngleTolerance != nil && (*c.AngleTolerance <= 0 || *c.AngleTolerance > 90) {
		return fmt.Errorf("angle_tolerance must be in (0, 90], got %g", *c.AngleTolerance)
	}
	if c.DistanceUnits != nil && !units.IsValid(*c.DistanceUnits) {
		return fmt.Errorf("distance_units must be one of %s, got %q", units.GetValidUnitsString(), *c.DistanceUnits)
	}
	if c.Title != nil && *c.Title == "" {
		return fmt.Errorf("title must not be empty")
	}
	for _, v := range c.Views {
		if _, err := survey.ParseViewKind(v); err != nil {
			return err
		}
	}
	return nil
}

// GetTitle returns the configured title or the default "Cave".
func (c *SurveyConfig) GetTitle() string {
	if c.Title != nil {
		return *c.Title
	}
	return "Cave"
}

// GetDistanceUnits returns the configured units or the default feet.
func (c *SurveyConfig) GetDistanceUnits() string {
	if c.DistanceUnits != nil {
		return *c.DistanceUnits
	}
	return units.Feet
}

// GetAngleTolerance returns the configured tolerance or the survey default.
func (c *SurveyConfig) GetAngleTolerance() float64 {
	if c.AngleTolerance != nil {
		return *c.AngleTolerance
	}
	return survey.DefaultAngleTolerance
}

// GetOutputDir returns the configured output directory or "plots".
func (c *SurveyConfig) GetOutputDir() string {
	if c.OutputDir != nil {
		return *c.OutputDir
	}
	return "plots"
}
