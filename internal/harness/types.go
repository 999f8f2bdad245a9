package harness

// SuiteResult holds the counters one suite ended with.
type SuiteResult struct {
	Name   string
	Cases  uint32
	Failed uint32
}

// Result is the outcome of running a Program.
// The report itself goes to the sink; Result only carries the numbers a
// caller needs to decide what to do next.
type Result struct {
	Plan  string
	RunID string

	Suites []SuiteResult

	// Skipped lists suites excluded by the suite filter.
	Skipped []string

	TotalCases  uint32
	TotalFailed uint32
}

// NewResult creates an empty result.
func NewResult(planName, runID string) *Result {
	return &Result{
		Plan:   planName,
		RunID:  runID,
		Suites: []SuiteResult{},
	}
}

// AddSuite records a finished suite.
func (r *Result) AddSuite(name string, cases, failed uint32) {
	r.Suites = append(r.Suites, SuiteResult{Name: name, Cases: cases, Failed: failed})
}

// AddSkipped records a suite the filter excluded.
func (r *Result) AddSkipped(name string) {
	r.Skipped = append(r.Skipped, name)
}

// Pass reports whether every case that ran passed.
func (r *Result) Pass() bool {
	return r.TotalFailed == 0
}
