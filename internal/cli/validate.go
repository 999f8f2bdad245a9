package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/embeardded/testie/internal/plan"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <plan>...",
		Short: "Validate plan files without running them",
		Long: `Load and validate plan files without running them.

Checks syntax, unknown fields, the plan schema and every step's values.
Prints one line per plan.

Exit codes:
  0 - All plans are valid
  1 - One or more plans are invalid
  2 - Command error (missing files, etc.)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	out := formatter(opts, cmd)

	var invalid, missing int
	for _, path := range paths {
		p, err := plan.Load(path)
		switch {
		case err == nil:
			out.Success("✓ %s", path)
			out.VerboseLog("  %s: %d suite(s)", p.Name, len(p.Suites))
		case errors.Is(err, fs.ErrNotExist):
			missing++
			out.Error(ErrCodeNotFound, err.Error())
		default:
			invalid++
			out.Success("✗ %s", path)
			out.Error(ErrCodeInvalidPlan, err.Error())
		}
	}

	if missing > 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%d plan file(s) not found", missing))
	}
	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d plan(s) invalid", invalid))
	}
	return nil
}
