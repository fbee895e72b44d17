package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/hashsentry/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"verbose output",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// ScanFlags holds scan and verify command flags
type ScanFlags struct {
	Algorithm     string
	Compare       bool
	Recursive     bool
	AbsolutePaths bool
	CSVPath       string
	JSONPath      string
	Exclude       []string
	Output        string
	Progress      bool
	ChunkSize     int
	ReadLimit     int64
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var scanFlags ScanFlags

// addScanFlags registers the flags shared by scan and verify
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scanFlags.Algorithm, "algo", "a", "", "hash algorithm (default: sha256)")
	cmd.Flags().BoolVarP(&scanFlags.Recursive, "recursive", "r", false, "scan subdirectories (default: top-level only)")
	cmd.Flags().BoolVar(&scanFlags.AbsolutePaths, "absolute-paths", false, "print/write absolute file paths (default: relative to root)")
	cmd.Flags().StringVar(&scanFlags.CSVPath, "csv", "", "write results to CSV file path")
	cmd.Flags().StringVar(&scanFlags.JSONPath, "json", "", "write results to JSON file path")
	cmd.Flags().StringSliceVar(&scanFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&scanFlags.Output, "output", "o", "", "console output format: human, json")
	cmd.Flags().BoolVar(&scanFlags.Progress, "progress", false, "show a progress bar while hashing")
	cmd.Flags().IntVar(&scanFlags.ChunkSize, "chunk-size", 0, "hashing read size in bytes (default: 1 MiB)")
	cmd.Flags().Int64Var(&scanFlags.ReadLimit, "read-limit", 0, "cap hashing read throughput in bytes per second (0 = unlimited)")
	cmd.Flags().StringVar(&scanFlags.LogFile, "log-file", "", "log file path (default: stderr)")
	cmd.Flags().StringVar(&scanFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&scanFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}
