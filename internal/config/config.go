package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/convf/convmusic/internal/ffmpeg"
)

// HistoryConfig represents conversion history configuration
type HistoryConfig struct {
	// Enabled enables recording conversions to the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database.
	// Empty means the default location under the convmusic home directory.
	DBPath string `yaml:"db_path"`

	// KeepDays is the number of days to keep conversion records (0 = forever)
	KeepDays int `yaml:"keep_days"`
}

// Config represents convmusic configuration options
type Config struct {
	// DefaultFormat is the target format used when no --format flag is given
	DefaultFormat string `yaml:"default_format"`

	// Quality is the default 0-10 VBR quality for codecs that support it
	Quality int `yaml:"quality"`

	// MaxConcurrency is the maximum number of parallel conversions in batch
	// mode (0 = number of CPUs)
	MaxConcurrency int `yaml:"max_concurrency"`

	// Timeout is the maximum duration for a single FFmpeg invocation
	// (0 = no timeout)
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// FFmpegPath overrides the ffmpeg binary location (default: PATH lookup)
	FFmpegPath string `yaml:"ffmpeg_path"`

	// SkipExisting skips conversions whose output file already exists
	SkipExisting bool `yaml:"skip_existing"`

	// History contains conversion history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		DefaultFormat:  "ogg",
		Quality:        ffmpeg.DefaultQuality,
		MaxConcurrency: 0, // Number of CPUs
		Timeout:        0, // No timeout
		LogLevel:       "info",
		FFmpegPath:     "",
		SkipExisting:   false,
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   "",
			KeepDays: 90,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	// Use a temporary struct to handle duration parsing
	type yamlConfig struct {
		DefaultFormat  string        `yaml:"default_format"`
		Quality        *int          `yaml:"quality"`
		MaxConcurrency int           `yaml:"max_concurrency"`
		Timeout        string        `yaml:"timeout"`
		LogLevel       string        `yaml:"log_level"`
		FFmpegPath     string        `yaml:"ffmpeg_path"`
		SkipExisting   bool          `yaml:"skip_existing"`
		History        HistoryConfig `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.DefaultFormat != "" {
		cfg.DefaultFormat = yamlCfg.DefaultFormat
	}
	// Quality is a pointer so an explicit 0 in the file is distinguishable
	// from an absent key
	if yamlCfg.Quality != nil {
		cfg.Quality = *yamlCfg.Quality
	}
	if yamlCfg.MaxConcurrency != 0 {
		cfg.MaxConcurrency = yamlCfg.MaxConcurrency
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.FFmpegPath != "" {
		cfg.FFmpegPath = yamlCfg.FFmpegPath
	}
	// SkipExisting is explicitly set if present in YAML
	if yamlCfg.SkipExisting {
		cfg.SkipExisting = yamlCfg.SkipExisting
	}

	// Merge History config - need to check if the section was provided at all
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			history := yamlCfg.History
			historyMap, _ := historySection.(map[string]interface{})

			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = history.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				cfg.History.DBPath = history.DBPath
			}
			if _, exists := historyMap["keep_days"]; exists {
				cfg.History.KeepDays = history.KeepDays
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .convmusic/config.yaml in the
// specified directory. If the directory or file doesn't exist, returns
// default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".convmusic", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(format *string, quality *int, maxConcurrency *int, timeout *time.Duration, skipExisting *bool) {
	if format != nil {
		c.DefaultFormat = *format
	}
	if quality != nil {
		c.Quality = *quality
	}
	if maxConcurrency != nil {
		c.MaxConcurrency = *maxConcurrency
	}
	if timeout != nil {
		c.Timeout = *timeout
	}
	if skipExisting != nil {
		c.SkipExisting = *skipExisting
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.DefaultFormat == "" {
		return fmt.Errorf("default_format cannot be empty")
	}

	if c.Quality < 0 || c.Quality > 10 {
		return fmt.Errorf("quality must be between 0 and 10, got %d", c.Quality)
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}

	// Validate log_level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	// Timeout can be 0 (no timeout) or positive, negative is invalid
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	if c.History.KeepDays < 0 {
		return fmt.Errorf("history.keep_days must be >= 0, got %d", c.History.KeepDays)
	}

	return nil
}
