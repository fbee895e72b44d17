package cli

import (
	"fmt"
	"os"

	"github.com/sdejongh/hashsentry/internal/platform"
	"github.com/sdejongh/hashsentry/pkg/config"
	"github.com/sdejongh/hashsentry/pkg/hashing"
	"github.com/sdejongh/hashsentry/pkg/models"
	"github.com/spf13/cobra"
)

// resolveRoot expands and validates the scan root. A missing or non-directory
// root is a precondition failure, reported before any file is touched.
func resolveRoot(path string) (string, error) {
	root, err := platform.NormalizePath(path)
	if err != nil {
		return "", models.NewPreconditionError(
			fmt.Sprintf("failed to resolve path: %s", path), err)
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return "", models.NewPreconditionError(
			fmt.Sprintf("path does not exist: %s", root), err)
	}
	if err != nil {
		return "", models.NewPreconditionError(
			fmt.Sprintf("failed to access path: %s", root), err)
	}
	if !info.IsDir() {
		return "", models.NewPreconditionError(
			fmt.Sprintf("path is not a directory: %s", root), nil)
	}

	return root, nil
}

// validatePreconditions checks everything that must hold before scanning
func validatePreconditions(cfg *config.Config) error {
	if !hashing.IsSupported(cfg.Scan.Algorithm) {
		return models.NewPreconditionError(
			fmt.Sprintf("unsupported hash algorithm: %s (valid: %v)",
				cfg.Scan.Algorithm, hashing.Supported()), nil)
	}

	if err := cfg.Validate(); err != nil {
		return models.NewPreconditionError("invalid configuration", err)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags.
// Boolean and numeric flags only override when explicitly set, so a config
// file value survives an unset flag.
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	if scanFlags.Algorithm != "" {
		cfg.Scan.Algorithm = scanFlags.Algorithm
	}

	if cmd.Flags().Changed("recursive") {
		cfg.Scan.Recursive = scanFlags.Recursive
	}

	if cmd.Flags().Changed("absolute-paths") {
		cfg.Scan.AbsolutePaths = scanFlags.AbsolutePaths
	}

	if len(scanFlags.Exclude) > 0 {
		cfg.Exclude = scanFlags.Exclude
	}

	if scanFlags.Output != "" {
		cfg.Output.Format = scanFlags.Output
	}

	if cmd.Flags().Changed("progress") {
		cfg.Output.Progress = scanFlags.Progress
	}

	if scanFlags.ChunkSize > 0 {
		cfg.Performance.ChunkSize = scanFlags.ChunkSize
	}

	if cmd.Flags().Changed("read-limit") {
		cfg.Performance.ReadLimit = scanFlags.ReadLimit
	}

	if scanFlags.LogFile != "" {
		cfg.Logging.File = scanFlags.LogFile
	}

	if scanFlags.LogFormat != "" {
		cfg.Logging.Format = scanFlags.LogFormat
	}

	if scanFlags.LogLevel != "" {
		cfg.Logging.Level = scanFlags.LogLevel
	}

	// Quiet suppresses the bar along with everything else
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	if globalFlags.Verbose {
		cfg.Logging.Level = "debug"
	}
}
