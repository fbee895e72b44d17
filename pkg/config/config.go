package config

import (
	"github.com/sdejongh/hashsentry/pkg/hashing"
	"github.com/sdejongh/hashsentry/pkg/logging"
	"github.com/sdejongh/hashsentry/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Scan        ScanConfig        `yaml:"scan"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// ScanConfig holds scan-related settings
type ScanConfig struct {
	Algorithm        string `yaml:"algorithm"`
	Recursive        bool   `yaml:"recursive"`
	AbsolutePaths    bool   `yaml:"absolute_paths"`
	CandidatePattern string `yaml:"candidate_pattern"`
	ReferencePattern string `yaml:"reference_pattern"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	// ChunkSize is the hashing read size in bytes
	ChunkSize int `yaml:"chunk_size"`
	// ReadLimit caps hashing read throughput in bytes per second (0 = unlimited)
	ReadLimit int64 `yaml:"read_limit"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Algorithm:        hashing.DefaultAlgorithm,
			Recursive:        false,
			AbsolutePaths:    false,
			CandidatePattern: "*.exe",
			ReferencePattern: "*.txt",
		},
		Performance: PerformanceConfig{
			ChunkSize: hashing.DefaultChunkSize,
			ReadLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: false,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !hashing.IsSupported(c.Scan.Algorithm) {
		return &models.ValidationError{
			Field:   "scan.algorithm",
			Message: "unsupported hash algorithm",
		}
	}

	if c.Scan.CandidatePattern == "" {
		return &models.ValidationError{
			Field:   "scan.candidate_pattern",
			Message: "must not be empty",
		}
	}

	if c.Scan.ReferencePattern == "" {
		return &models.ValidationError{
			Field:   "scan.reference_pattern",
			Message: "must not be empty",
		}
	}

	if c.Performance.ChunkSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.chunk_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if c.Performance.ReadLimit < 0 {
		return &models.ValidationError{
			Field:   "performance.read_limit",
			Message: "must not be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
