package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sdejongh/hashsentry/internal/cli"
	"github.com/sdejongh/hashsentry/pkg/models"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var precondition *models.PreconditionError
		if errors.As(err, &precondition) {
			os.Exit(precondition.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "hashsentry",
		Short: "Executable file hash scanner and verifier",
		Long: `hashsentry scans a directory tree for executable files, computes a
cryptographic digest for each one, and optionally verifies the digests
against stored reference files. Results can be printed to the console or
exported as CSV and JSON reports.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewScanCommand())
	rootCmd.AddCommand(cli.NewVerifyCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
