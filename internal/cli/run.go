package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/embeardded/testie/internal/harness"
	"github.com/embeardded/testie/internal/plan"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Suite    string        // suite name glob
	Golden   string        // golden report file
	Update   bool          // rewrite the golden file instead of comparing
	Watch    bool          // re-run on plan changes
	Debounce time.Duration // quiet period before a watch re-run
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <plan>...",
		Short: "Run plan files and print the report",
		Long: `Run one or more plan files and stream the report to stdout.

Plans run in the order given; their reports are concatenated.
With --golden the whole report is also compared against a golden file.

Exit codes:
  0 - All cases passed (and the report matches the golden file)
  1 - One or more cases failed, or the report differs from the golden file
  2 - Command error (missing or invalid plan, bad filter, etc.)

Examples:
  testie run plans/smoke.yaml
  testie run plans/*.yaml --suite "Buffer*"
  testie run plans/smoke.cue --golden testdata/smoke.golden --update
  testie run plans/smoke.yaml --watch -v`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlans(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Suite, "suite", "", "run only suites whose name matches this glob")
	cmd.Flags().StringVar(&opts.Golden, "golden", "", "compare the report against this golden file")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite the golden file with the current report")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "re-run when a plan file changes")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 200*time.Millisecond, "quiet period before a watch re-run")

	return cmd
}

func runPlans(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	if opts.Update && opts.Golden == "" {
		return NewExitError(ExitCommandError, "--update requires --golden")
	}

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	out := formatter(opts.RootOptions, cmd)

	if !opts.Watch {
		return runOnce(opts, paths, cmd.OutOrStdout(), logger, out)
	}

	// A command error on the first run (missing file, bad filter) ends the
	// command; anything else is reported and watching starts.
	err := runOnce(opts, paths, cmd.OutOrStdout(), logger, out)
	if GetExitCode(err) == ExitCommandError {
		return err
	}
	reportRunError(out, err)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := newPlanWatcher(paths, opts.Debounce, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start watcher", err)
	}
	out.VerboseLog("watching %d plan file(s); press Ctrl-C to stop", len(paths))

	return w.Run(ctx, func() {
		reportRunError(out, runOnce(opts, paths, cmd.OutOrStdout(), logger, out))
	})
}

// runOnce loads every plan, runs them in order and checks the golden file.
func runOnce(opts *RunOptions, paths []string, stdout io.Writer, logger *slog.Logger, out *OutputFormatter) error {
	plans := make([]*plan.Plan, 0, len(paths))
	for _, path := range paths {
		p, err := plan.Load(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				out.Error(ErrCodeNotFound, err.Error())
				return WrapExitError(ExitCommandError, "plan not found", err)
			}
			out.Error(ErrCodeInvalidPlan, err.Error())
			return WrapExitError(ExitCommandError, "invalid plan", err)
		}
		plans = append(plans, p)
	}

	w := bufio.NewWriter(stdout)
	var sink io.ByteWriter = w
	var report bytes.Buffer
	if opts.Golden != "" {
		sink = teeSink{w, &report}
	}

	var cases, failed uint32
	var suites int
	pass := true
	for _, p := range plans {
		res, err := harness.RunPlan(p, sink, harness.Options{
			SuiteFilter: opts.Suite,
			Logger:      logger.With("plan", p.Name),
		})
		if err != nil {
			_ = w.Flush()
			if res != nil {
				out.Error(ErrCodeOutput, err.Error())
				return WrapExitError(ExitCommandError, "failed to write report", err)
			}
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to run plan %s", p.Path), err)
		}
		out.VerboseLog("%s: %d case(s), %d failed", p.Path, res.TotalCases, res.TotalFailed)
		cases += res.TotalCases
		failed += res.TotalFailed
		suites += len(res.Suites)
		pass = pass && res.Pass()
	}

	if err := w.Flush(); err != nil {
		out.Error(ErrCodeOutput, err.Error())
		return WrapExitError(ExitCommandError, "failed to write report", err)
	}

	if opts.Suite != "" && suites == 0 {
		out.Error(ErrCodeNotFound, fmt.Sprintf("no suite matches --suite %q", opts.Suite))
		return NewExitError(ExitCommandError, "no suite matched the filter")
	}

	if opts.Golden != "" {
		if err := checkGolden(opts.Golden, opts.Update, report.Bytes(), out); err != nil {
			return err
		}
	}

	if !pass {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d case(s) failed", failed, cases))
	}
	return nil
}

// teeSink writes every character to both sinks.
type teeSink struct {
	primary io.ByteWriter
	copy    io.ByteWriter
}

func (t teeSink) WriteByte(c byte) error {
	if err := t.primary.WriteByte(c); err != nil {
		return err
	}
	return t.copy.WriteByte(c)
}

// reportRunError prints the outcome of a watch re-run without ending the
// command.
func reportRunError(out *OutputFormatter, err error) {
	if err == nil {
		out.VerboseLog("✓ all cases passed")
		return
	}
	fmt.Fprintf(out.GetErrWriter(), "✗ %v\n", err)
}
