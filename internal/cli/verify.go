package cli

import (
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command, a scan with comparison
// always enabled
func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <directory>",
		Short: "Verify executable hashes against reference files",
		Long: `Scan a directory for executable files, compute a digest for each one,
and classify every file against the reference files found under the same
root: MATCH when the stored hash equals the computed one, MISMATCH when it
differs, UNKNOWN when no reference exists for the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, args[0], true)
		},
	}

	addScanFlags(cmd)

	return cmd
}
