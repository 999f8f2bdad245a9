package testie

import (
	"github.com/embeardded/testie/internal/compare"
	"github.com/embeardded/testie/internal/format"
)

const (
	suiteSuffix      = " Test Suite"
	tokenTestCases   = " Test Cases "
	tokenCasesFailed = " Failed"
	suiteFill        = '-'
	nameFill         = '.'
)

// Outcome is the verdict on a finished case.
type Outcome int

const (
	// OutcomePass: at least one assertion and no failures.
	OutcomePass Outcome = iota
	// OutcomeFail: at least one failed assertion.
	OutcomeFail
	// OutcomeEmpty: no assertions at all. Counted as a failure.
	OutcomeEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeFail:
		return "fail"
	case OutcomeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// caseOutcome is the single place that decides how a case ended.
//
// A case with no assertions fails without printing FAIL, since FAIL is only
// ever printed by a failing assertion.
func caseOutcome(passes, fails uint32) Outcome {
	switch {
	case fails > 0:
		return OutcomeFail
	case passes == 0:
		return OutcomeEmpty
	default:
		return OutcomePass
	}
}

// RunSuite runs a suite procedure under the display name and prints its
// header, footer and case summary. The suite counters are reset first.
func (r *Run) RunSuite(s Procedure, name string) {
	if r.inSuite || r.inCase {
		r.log.Warn("suite started inside a running suite or case; counters are shared",
			"suite", name,
		)
	}
	outerSuite := r.inSuite
	r.inSuite = true
	defer func() { r.inSuite = outerSuite }()

	r.suiteCases = 0
	r.suiteFailed = 0
	r.log.Debug("suite started", "suite", name)

	r.out.String(name)
	r.out.EndLine()
	r.out.FillLine(suiteFill)

	invoke(r, s)

	r.out.FillLine(suiteFill)
	r.out.Uint(r.suiteCases)
	r.out.String(tokenTestCases)
	r.out.Uint(r.suiteFailed)
	r.out.String(tokenCasesFailed)
	r.out.EndLine()
	r.out.EndLine()

	r.log.Debug("suite finished",
		"suite", name,
		"cases", r.suiteCases,
		"failed", r.suiteFailed,
	)
}

// Suite runs body as a suite named "<name> Test Suite".
func (r *Run) Suite(name string, body func(r *Run)) {
	r.RunSuite(Func(body), name+suiteSuffix)
}

// RunCase runs one case: setup hook, name field, body, verdict, teardown hook.
func (r *Run) RunCase(c Procedure, name string) {
	if r.inCase {
		r.log.Warn("case started inside a running case; counters are shared",
			"case", name,
		)
	}
	outerCase := r.inCase
	r.inCase = true
	defer func() { r.inCase = outerCase }()

	r.bump(&r.suiteCases)
	r.bump(&r.totalCases)
	r.caseFails = 0
	r.casePasses = 0

	invoke(r, r.setup)

	r.printName(name)

	invoke(r, c)

	outcome := caseOutcome(r.casePasses, r.caseFails)
	switch outcome {
	case OutcomePass:
		r.out.String(tokenPass)
		r.out.EndLine()
	case OutcomeEmpty:
		r.log.Warn("case made no assertions; counted as failed", "case", name)
		fallthrough
	default:
		r.bump(&r.suiteFailed)
		r.bump(&r.totalFailed)
	}

	r.log.Debug("case finished",
		"case", name,
		"outcome", outcome.String(),
		"passes", r.casePasses,
		"fails", r.caseFails,
	)

	invoke(r, r.teardown)
}

// Case runs body as a case named name.
func (r *Run) Case(name string, body func(r *Run)) {
	r.RunCase(Func(body), name)
}

// printName prints name in the fixed-width name field followed by a space.
// Short names are padded with '.', long names are cut without a marker.
func (r *Run) printName(name string) {
	if n := len(compare.Terminated(name)); n < format.NameWidth {
		r.out.String(name)
		r.out.Fill(nameFill, format.NameWidth-n)
	} else {
		r.out.Left(name, format.NameWidth)
	}
	r.out.Char(' ')
}
