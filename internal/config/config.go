// =============================================================================
// Bike Sharing Dashboard - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values are resolved in
// this order, later sources winning:
//   1. config.yaml (optional unless passed explicitly with --config)
//   2. a .env file next to the working directory (optional)
//   3. BIKEDASH_* environment variables
//   4. built-in defaults for anything still unset
//
// The result is validated before it is handed to the commands.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "BIKEDASH"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Filter  FilterConfig  `yaml:"filter" envconfig:"FILTER"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
}

// DataConfig describes the input CSV file.
type DataConfig struct {
	// File is the path to the rental dataset.
	// Default: "data/day.csv"
	File string `yaml:"file" envconfig:"FILE" validate:"required"`

	// Delimiter separates fields. Accepts a single character or one of
	// "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"required"`

	// HeaderRows is the number of header rows before the data.
	// Default: 1
	HeaderRows int `yaml:"header_rows" envconfig:"HEADER_ROWS" validate:"min=1"`

	// WeekendDays are the weekday codes treated as weekend.
	// Default: [0, 6] (the UCI encoding: 0 = Sunday, 6 = Saturday)
	WeekendDays []int `yaml:"weekend_days" envconfig:"WEEKEND_DAYS" validate:"required,dive,min=0,max=6"`
}

// FilterConfig holds the initial state of the filter controls.
type FilterConfig struct {
	// DefaultMinCount and DefaultMaxCount are the initial rental-count window.
	// Both are clamped into the data's count range at render time.
	// Default: 100 and 5000
	DefaultMinCount int `yaml:"default_min_count" envconfig:"DEFAULT_MIN_COUNT" validate:"min=0"`
	DefaultMaxCount int `yaml:"default_max_count" envconfig:"DEFAULT_MAX_COUNT" validate:"gtefield=DefaultMinCount"`

	// PreviewRows is the number of rows shown by the raw-data preview.
	// Default: 5
	PreviewRows int `yaml:"preview_rows" envconfig:"PREVIEW_ROWS" validate:"min=1"`
}

// ServerConfig configures the HTTP dashboard.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":8501"
	Addr string `yaml:"addr" envconfig:"ADDR" validate:"required"`

	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`

	// Metrics exposes /metrics when set.
	// Default: true
	Metrics *bool `yaml:"metrics" envconfig:"METRICS"`
}

// MetricsEnabled reports whether /metrics should be served.
func (s ServerConfig) MetricsEnabled() bool {
	return s.Metrics == nil || *s.Metrics
}

// LoggingConfig controls the slog logger.
type LoggingConfig struct {
	// Level: "debug", "info", "warn", "error". Default: "info"
	Level string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`

	// Format: "text" or "json". Default: "text"
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`

	// File is an optional log file written in addition to stderr.
	File string `yaml:"file" envconfig:"FILE"`
}

// OutputConfig controls where the report command writes its artifacts.
type OutputConfig struct {
	// Dir is the output directory. Default: "./output"
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`

	// FileNameFormat is the base name of every artifact; the extension is
	// appended per artifact. Placeholders: {uuid}, {timestamp}, {date}, {time}.
	// Default: "bikeshare_{timestamp}"
	FileNameFormat string `yaml:"file_name_format" envconfig:"FILE_NAME_FORMAT" validate:"required"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load resolves the configuration.
//
// PARAMETERS:
//   - configPath: path to the YAML file.
//   - required: when true a missing file is an error; otherwise a missing
//     file simply means "defaults and environment only".
func Load(configPath string, required bool) (*Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// A missing .env file is the normal case.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration made of defaults only.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults sets default values for any unset configuration options.
func ApplyDefaults(cfg *Config) {
	if cfg.Data.File == "" {
		cfg.Data.File = "data/day.csv"
	}
	if cfg.Data.Delimiter == "" {
		cfg.Data.Delimiter = ","
	}
	if cfg.Data.HeaderRows == 0 {
		cfg.Data.HeaderRows = 1
	}
	if len(cfg.Data.WeekendDays) == 0 {
		cfg.Data.WeekendDays = []int{0, 6}
	}

	if cfg.Filter.DefaultMinCount == 0 && cfg.Filter.DefaultMaxCount == 0 {
		cfg.Filter.DefaultMinCount = 100
		cfg.Filter.DefaultMaxCount = 5000
	}
	if cfg.Filter.PreviewRows == 0 {
		cfg.Filter.PreviewRows = 5
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8501"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./output"
	}
	if cfg.Output.FileNameFormat == "" {
		cfg.Output.FileNameFormat = "bikeshare_{timestamp}"
	}
}

// Validate checks the struct tags of the configuration.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}
