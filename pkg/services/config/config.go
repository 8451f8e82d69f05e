// Package config loads the analysis configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Defaults reproduce the constants the analysis was originally run with.
const (
	DefaultInputPath        = "./data/atm_co2_ppmv.csv"
	DefaultResultsDir       = "./results"
	DefaultChangepoints     = 5
	DefaultDetectionWidth   = 5
	DefaultEvaluationWindow = 3
	DefaultGridColumns      = 5
)

// Analysis configures a full analysis run.
type Analysis struct {
	InputPath        string `mapstructure:"input_path"`
	ResultsDir       string `mapstructure:"results_dir"`
	Changepoints     int    `mapstructure:"changepoints"`
	DetectionWidth   int    `mapstructure:"detection_width"`
	EvaluationWindow int    `mapstructure:"evaluation_window"`
	GridColumns      int    `mapstructure:"grid_columns"`
}

// Default returns the built-in configuration.
func Default() Analysis {
	return Analysis{
		InputPath:        DefaultInputPath,
		ResultsDir:       DefaultResultsDir,
		Changepoints:     DefaultChangepoints,
		DetectionWidth:   DefaultDetectionWidth,
		EvaluationWindow: DefaultEvaluationWindow,
		GridColumns:      DefaultGridColumns,
	}
}

// Load reads the configuration file at path over the defaults. An empty path
// returns the defaults. CARBON_-prefixed environment variables override file
// values.
func Load(path string) (*Analysis, error) {
	v := viper.New()
	v.SetEnvPrefix("CARBON")
	v.AutomaticEnv()

	cfg := Default()
	v.SetDefault("input_path", cfg.InputPath)
	v.SetDefault("results_dir", cfg.ResultsDir)
	v.SetDefault("changepoints", cfg.Changepoints)
	v.SetDefault("detection_width", cfg.DetectionWidth)
	v.SetDefault("evaluation_window", cfg.EvaluationWindow)
	v.SetDefault("grid_columns", cfg.GridColumns)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse analysis config: %w", err)
	}
	return &cfg, nil
}
