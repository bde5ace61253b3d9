// Package config loads and validates the application configuration.
// Precedence is built-in defaults, then an optional YAML file in the
// working directory, then SALESPULSE_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	RFM      RFMConfig      `yaml:"rfm" envconfig:"RFM"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// PipelineConfig controls the ingest and aggregation run.
type PipelineConfig struct {
	InputFile              string  `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	OutputDir              string  `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	TopKProducts           int     `yaml:"top_k_products" envconfig:"TOP_K_PRODUCTS" validate:"min=1,max=100"`
	ZScoreThreshold        float64 `yaml:"z_score_threshold" envconfig:"Z_SCORE_THRESHOLD" validate:"gt=0"`
	EnableAnomalyDetection bool    `yaml:"enable_anomaly_detection" envconfig:"ENABLE_ANOMALY_DETECTION"`
	EnableRFMAnalysis      bool    `yaml:"enable_rfm_analysis" envconfig:"ENABLE_RFM_ANALYSIS"`
}

// RFMConfig controls customer segmentation.
type RFMConfig struct {
	WhalePercentile int    `yaml:"whale_percentile" envconfig:"WHALE_PERCENTILE" validate:"min=1,max=100"`
	ReferenceDate   string `yaml:"reference_date" envconfig:"REFERENCE_DATE"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

const (
	envPrefix      = "SALESPULSE"
	configFileName = "salespulse.yaml"
)

// defaults returns the built-in configuration. Defaults live here rather
// than in envconfig tags so that file values are not clobbered when the
// corresponding environment variable is unset.
func defaults() Config {
	return Config{
		Pipeline: PipelineConfig{
			OutputDir:              "output",
			TopKProducts:           10,
			ZScoreThreshold:        3.0,
			EnableAnomalyDetection: true,
			EnableRFMAnalysis:      true,
		},
		RFM: RFMConfig{WhalePercentile: 99},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/salespulse.log",
		},
	}
}

// Load loads the configuration: defaults, then the optional YAML file,
// then environment overrides, then validation.
func Load() (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(configFileName); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFileName, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct-tag constraints and the reference date format.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := c.RFM.ParseReferenceDate(); err != nil {
		return err
	}
	return nil
}

// ParseReferenceDate returns the configured reference date, or nil when
// unset. The date must be in YYYY-MM-DD form.
func (r RFMConfig) ParseReferenceDate() (*time.Time, error) {
	if r.ReferenceDate == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", r.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid rfm reference date %q (want YYYY-MM-DD): %w", r.ReferenceDate, err)
	}
	return &t, nil
}

// TablesDir is where per-aggregator JSON tables are written.
func (p PipelineConfig) TablesDir() string { return filepath.Join(p.OutputDir, "tables") }

// ReportsDir is where the Markdown summary report is written.
func (p PipelineConfig) ReportsDir() string { return filepath.Join(p.OutputDir, "reports") }

// ErrorsDir is where the dead-letter queue is written.
func (p PipelineConfig) ErrorsDir() string { return filepath.Join(p.OutputDir, "errors") }

// DLQPath is the full path of the dead-letter queue file.
func (p PipelineConfig) DLQPath() string { return filepath.Join(p.ErrorsDir(), "validation_errors.jsonl") }

// EnsureOutputDirs creates the output directory tree.
func (p PipelineConfig) EnsureOutputDirs() error {
	for _, dir := range []string{p.TablesDir(), p.ReportsDir(), p.ErrorsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return nil
}
