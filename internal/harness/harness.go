package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/embeardded/testie"
	"github.com/embeardded/testie/internal/plan"
)

// ErrBadFilter is returned for a suite filter that is not a valid glob.
var ErrBadFilter = errors.New("invalid suite filter")

// Options tune a single run of a Program.
type Options struct {
	// SuiteFilter is a glob (path.Match syntax) matched against suite names.
	// Empty runs every suite.
	SuiteFilter string

	// Logger receives the engine's records. Nil discards them.
	Logger *slog.Logger

	// RunID overrides the plan's run identifier.
	RunID string

	// Compare replaces the comparison primitives.
	Compare *testie.Primitives
}

// Run executes the program and writes the report to w.
//
// Case failures are not errors; they are counted in the Result. Run returns
// an error only when it cannot start or the sink failed, in which case the
// Result is still complete.
func (p *Program) Run(w io.ByteWriter, opts Options) (*Result, error) {
	if opts.SuiteFilter != "" {
		if _, err := path.Match(opts.SuiteFilter, ""); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrBadFilter, opts.SuiteFilter, err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	runID := p.runID
	if opts.RunID != "" {
		runID = opts.RunID
	}

	r, err := testie.New(testie.Config{
		Sink:    w,
		Width:   p.width,
		Compare: opts.Compare,
		Logger:  logger,
		RunID:   runID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	result := NewResult(p.name, r.ID())
	for _, s := range p.suites {
		if !matches(opts.SuiteFilter, s.name) {
			result.AddSkipped(s.name)
			logger.Debug("suite skipped by filter", "suite", s.name, "filter", opts.SuiteFilter)
			continue
		}

		r.SetSetup(s.setup)
		r.SetTeardown(s.teardown)
		r.Suite(s.name, func(r *testie.Run) {
			for _, c := range s.cases {
				r.RunCase(c.body, c.name)
			}
		})
		result.AddSuite(s.name, r.SuiteCases(), r.SuiteFailed())
	}
	r.SetSetup(nil)
	r.SetTeardown(nil)

	result.TotalCases = r.TotalCases()
	result.TotalFailed = r.TotalFailed()

	if err := r.Err(); err != nil {
		return result, fmt.Errorf("writing report: %w", err)
	}
	return result, nil
}

// RunPlan compiles and runs p in one step.
func RunPlan(p *plan.Plan, w io.ByteWriter, opts Options) (*Result, error) {
	prog, err := Compile(p)
	if err != nil {
		return nil, err
	}
	return prog.Run(w, opts)
}

func matches(filter, name string) bool {
	if filter == "" {
		return true
	}
	ok, _ := path.Match(filter, name)
	return ok
}
