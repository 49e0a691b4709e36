// Package config loads the capgain configuration from a YAML or JSON file
// with environment-variable defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
)

// ScenarioConfig holds the six scalar valuation inputs.
type ScenarioConfig struct {
	Spot    float64 `yaml:"spot" json:"spot"`       // S0
	Alpha   float64 `yaml:"alpha" json:"alpha"`     // payoff scaling
	Cap     float64 `yaml:"cap" json:"cap"`         // H
	Rate    float64 `yaml:"rate" json:"rate"`       // r
	Vol     float64 `yaml:"vol" json:"vol"`         // sigma
	Horizon float64 `yaml:"horizon" json:"horizon"` // T, years
}

// QuadratureConfig controls the adaptive integrator.
type QuadratureConfig struct {
	RelTol       float64 `yaml:"rel_tol" json:"rel_tol"`
	AbsTol       float64 `yaml:"abs_tol" json:"abs_tol"`
	MaxIntervals int     `yaml:"max_intervals" json:"max_intervals"`
}

// Config is the full application configuration.
type Config struct {
	Scenario   ScenarioConfig   `yaml:"scenario" json:"scenario"`
	Quadrature QuadratureConfig `yaml:"quadrature" json:"quadrature"`
	Port       string           `yaml:"port" json:"port"`
	ReportDir  string           `yaml:"report_dir" json:"report_dir"`
	Verbosity  int              `yaml:"verbosity" json:"verbosity"` // 0=errors,1=info,2=debug,3=trace
}

// Default returns the built-in configuration with environment overrides
// applied. A config file loaded on top of it wins over both.
func Default() *Config {
	return &Config{
		Scenario: ScenarioConfig{
			Spot:    getEnvFloat("CAPGAIN_SPOT", 100),
			Alpha:   getEnvFloat("CAPGAIN_ALPHA", 0.8),
			Cap:     getEnvFloat("CAPGAIN_CAP", 120),
			Rate:    getEnvFloat("CAPGAIN_RATE", 0.05),
			Vol:     getEnvFloat("CAPGAIN_VOL", 0.2),
			Horizon: getEnvFloat("CAPGAIN_HORIZON", 1),
		},
		Quadrature: QuadratureConfig{
			RelTol:       getEnvFloat("CAPGAIN_REL_TOL", 1e-6),
			AbsTol:       getEnvFloat("CAPGAIN_ABS_TOL", 1e-12),
			MaxIntervals: getEnvInt("CAPGAIN_MAX_INTERVALS", 256),
		},
		Port:      getEnv("CAPGAIN_PORT", ":8080"),
		ReportDir: getEnv("CAPGAIN_REPORT_DIR", "./out"),
		Verbosity: getEnvInt("CAPGAIN_VERBOSITY", 1),
	}
}

// Load reads a config file on top of the defaults. Files with a .json
// extension parse as JSON; anything else parses as YAML. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid JSON config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML config %s: %w", path, err)
		}
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
