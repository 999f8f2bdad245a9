package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/embeardded/testie/internal/plan"
	"github.com/embeardded/testie/internal/testutil"
)

// goldenRunID keeps log output stable in golden tests; the report itself
// never contains the run ID.
const goldenRunID = testutil.RunID

// RunWithGolden runs a plan and compares the report against a golden file.
// The golden file is stored in testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the plan cannot be compiled or run. Report mismatches
// fail the test through goldie.
func RunWithGolden(t *testing.T, name string, p *plan.Plan) (*Result, error) {
	t.Helper()

	rec := testutil.NewRecorder()
	res, err := RunPlan(p, rec, Options{RunID: goldenRunID})
	if err != nil {
		return res, err
	}

	AssertGolden(t, name, rec.Bytes())
	return res, nil
}

// AssertGolden compares a report against testdata/golden/{name}.golden.
// Reports are compared byte for byte, CRLF line endings included.
func AssertGolden(t *testing.T, name string, report []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, report)
}
