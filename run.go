package testie

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/embeardded/testie/internal/compare"
	"github.com/embeardded/testie/internal/format"
)

// Procedure is a zero-argument unit of test logic: a suite body, a case body
// or a setup/teardown hook. It receives the Run it executes in.
type Procedure interface {
	Invoke(r *Run)
}

// Func adapts an ordinary function to a Procedure.
type Func func(r *Run)

// Invoke calls f(r). A nil Func does nothing.
func (f Func) Invoke(r *Run) {
	if f != nil {
		f(r)
	}
}

// Run is the state of one test run: the per-suite and per-case counters,
// the setup/teardown hooks and the report printer.
//
// Case counters are meaningful only while a case is running. Suite counters
// are reset by every suite.
type Run struct {
	id    string
	out   *format.Printer
	cmp   *compare.Adapter
	log   *slog.Logger
	limit uint32

	suiteCases  uint32
	suiteFailed uint32
	caseFails   uint32
	casePasses  uint32

	totalCases  uint32
	totalFailed uint32

	setup    Procedure
	teardown Procedure

	inSuite bool
	inCase  bool
}

// New creates a Run from cfg.
func New(cfg Config) (*Run, error) {
	if cfg.Sink == nil {
		return nil, ErrNoSink
	}
	width, err := cfg.width()
	if err != nil {
		return nil, err
	}

	prims := compare.Default()
	if cfg.Compare != nil {
		prims = *cfg.Compare
	}

	id := cfg.RunID
	if id == "" {
		id = uuid.NewString()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Run{
		id:    id,
		out:   format.NewPrinter(cfg.Sink),
		cmp:   compare.NewAdapter(prims),
		log:   logger.With("run_id", id),
		limit: width.counterLimit(),
	}, nil
}

// ID returns the run identifier used in log records.
func (r *Run) ID() string { return r.id }

// SuiteCases returns the number of cases run in the current suite.
func (r *Run) SuiteCases() uint32 { return r.suiteCases }

// SuiteFailed returns the number of failed cases in the current suite.
func (r *Run) SuiteFailed() uint32 { return r.suiteFailed }

// CasePasses returns the passed assertions of the current case.
func (r *Run) CasePasses() uint32 { return r.casePasses }

// CaseFails returns the failed assertions of the current case.
func (r *Run) CaseFails() uint32 { return r.caseFails }

// TotalCases returns the number of cases run over the whole run.
func (r *Run) TotalCases() uint32 { return r.totalCases }

// TotalFailed returns the number of failed cases over the whole run.
func (r *Run) TotalFailed() uint32 { return r.totalFailed }

// Err returns the first error the output sink reported. Sink errors never
// affect counting; a run with a broken sink still completes.
func (r *Run) Err() error { return r.out.Err() }

// SetSetup sets the hook invoked before every case body. Nil clears it.
func (r *Run) SetSetup(p Procedure) { r.setup = p }

// SetTeardown sets the hook invoked after every case body. Nil clears it.
func (r *Run) SetTeardown(p Procedure) { r.teardown = p }

// bump increments a counter, saturating at the width limit.
func (r *Run) bump(c *uint32) {
	if *c < r.limit {
		*c++
	}
}

func invoke(r *Run, p Procedure) {
	if p != nil {
		p.Invoke(r)
	}
}
