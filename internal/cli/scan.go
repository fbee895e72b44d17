package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sdejongh/hashsentry/pkg/config"
	"github.com/sdejongh/hashsentry/pkg/hashing"
	"github.com/sdejongh/hashsentry/pkg/logging"
	"github.com/sdejongh/hashsentry/pkg/models"
	"github.com/sdejongh/hashsentry/pkg/output"
	"github.com/sdejongh/hashsentry/pkg/ratelimit"
	"github.com/sdejongh/hashsentry/pkg/scan"
	"github.com/sdejongh/hashsentry/pkg/storage"
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Hash executable files under a directory",
		Long: `Scan a directory for executable files, compute a digest for each one,
and print or export the results. With --compare, loaded reference files
are checked against the computed hashes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, args[0], scanFlags.Compare)
		},
	}

	addScanFlags(cmd)
	cmd.Flags().BoolVarP(&scanFlags.Compare, "compare", "c", false, "compare hashes against reference files")

	return cmd
}

// runWorkflow is the shared scan/verify pipeline
func runWorkflow(cmd *cobra.Command, rootArg string, compare bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cmd, cfg)

	// Preconditions fail before any file is read
	root, err := resolveRoot(rootArg)
	if err != nil {
		return err
	}
	if err := validatePreconditions(cfg); err != nil {
		return err
	}

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	backend, err := storage.NewLocal(root, cfg.Exclude)
	if err != nil {
		return models.NewPreconditionError("failed to open scan root", err)
	}
	defer backend.Close()

	hasher, err := hashing.NewHasher(cfg.Scan.Algorithm, cfg.Performance.ChunkSize)
	if err != nil {
		return models.NewPreconditionError("failed to create hasher", err)
	}
	if cfg.Performance.ReadLimit > 0 {
		limiter := ratelimit.NewLimiter(cfg.Performance.ReadLimit)
		hasher.SetReaderWrapper(func(r io.Reader) io.Reader {
			return ratelimit.NewReader(r, limiter)
		})
	}

	scanner := scan.NewScanner(backend, hasher, scan.Options{
		CandidatePattern: cfg.Scan.CandidatePattern,
		ReferencePattern: cfg.Scan.ReferencePattern,
		Recursive:        cfg.Scan.Recursive,
		AbsolutePaths:    cfg.Scan.AbsolutePaths,
	}, logger)

	formatter := createFormatter(cfg, scanner)

	logger.Info(ctx, "starting scan", logging.Fields{
		"root":      root,
		"algorithm": cfg.Scan.Algorithm,
		"recursive": cfg.Scan.Recursive,
		"compare":   compare,
	})

	report, err := scanner.Run(ctx)
	if err != nil {
		formatter.Error(err)
		return fmt.Errorf("scan failed: %w", err)
	}

	if compare {
		refs, err := scanner.LoadReferences(ctx, report)
		if err != nil {
			formatter.Error(err)
			return fmt.Errorf("failed to load reference files: %w", err)
		}
		scan.Classify(report.Records, refs)
		report.Compared = true
		report.CountStatuses()
	}

	if err := emitReport(formatter, report, compare); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Export files are written even when no files matched
	if scanFlags.CSVPath != "" {
		if err := output.WriteCSV(report.Records, scanFlags.CSVPath, compare); err != nil {
			return fmt.Errorf("failed to write CSV report: %w", err)
		}
	}
	if scanFlags.JSONPath != "" {
		if err := output.WriteJSON(report.Records, scanFlags.JSONPath); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
	}

	logger.Info(ctx, "scan complete", logging.Fields{
		"scan_id":      report.ScanID,
		"files_hashed": report.Stats.FilesHashed,
		"errors":       report.Stats.FilesErrored,
		"status":       string(report.Status),
	})

	return nil
}

// createFormatter builds the console formatter and hooks the progress bar
// into the scanner when enabled
func createFormatter(cfg *config.Config, scanner *scan.Scanner) output.Formatter {
	if cfg.Output.Format == "json" {
		return output.NewJSONFormatter()
	}
	if cfg.Output.Progress {
		pf := output.NewProgressFormatter()
		scanner.SetProgress(func(processed, total int, path string) {
			pf.Tick(processed, total)
		})
		return pf
	}
	return output.NewHumanFormatter(cfg.Output.Quiet)
}

// emitReport pushes the finished report through a formatter
func emitReport(formatter output.Formatter, report *models.ScanReport, withStatus bool) error {
	if err := formatter.Start(os.Stdout, len(report.Records)); err != nil {
		return err
	}
	for _, record := range report.Records {
		if err := formatter.Record(record, withStatus); err != nil {
			return err
		}
	}
	return formatter.Complete(report)
}

// createLogger builds the logger described by the logging configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NewNullLogger(), nil
	}

	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	if cfg.File == "" {
		return logging.NewConsoleLogger(level), nil
	}

	format := logging.FormatText
	if cfg.Format == "json" {
		format = logging.FormatJSON
	}
	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   cfg.File,
		Format: format,
		Level:  level,
	})
}
