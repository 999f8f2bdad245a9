package harness

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeardded/testie"
	"github.com/embeardded/testie/internal/plan"
	"github.com/embeardded/testie/internal/testutil"
)

func pass() plan.Step { return plan.Step{Kind: plan.KindTrue, Actual: true} }
func fail() plan.Step { return plan.Step{Kind: plan.KindFail} }

func twoSuitePlan() *plan.Plan {
	return &plan.Plan{
		Name:  "two",
		RunID: "plan-run",
		Suites: []plan.Suite{
			{
				Name:  "Alpha",
				Setup: []plan.Step{pass()},
				Cases: []plan.Case{
					{Name: "SetupOnly"},
					{Name: "Fails", Assertions: []plan.Step{fail()}},
				},
			},
			{
				Name: "Beta",
				Cases: []plan.Case{
					{Name: "NoSetupHere"},
					{Name: "Passes", Assertions: []plan.Step{pass()}},
					{Name: "AlsoPasses", Assertions: []plan.Step{pass(), pass()}},
				},
			},
		},
	}
}

func TestCompile_Suites(t *testing.T) {
	prog, err := Compile(twoSuitePlan())
	require.NoError(t, err)

	assert.Equal(t, "two", prog.Name())
	assert.Equal(t, []string{"Alpha", "Beta"}, prog.Suites())
}

func TestCompile_RejectsBadWidth(t *testing.T) {
	p := twoSuitePlan()
	p.Width = 8

	_, err := Compile(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, testie.ErrInvalidWidth))
}

func TestCompile_RejectsBadStepValues(t *testing.T) {
	p := twoSuitePlan()
	p.Suites[1].Cases[1].Assertions = []plan.Step{
		{Kind: plan.KindUint8, Expected: "three", Actual: 3},
	}

	_, err := Compile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suites[1].cases[1].assertions[0]")
	assert.Contains(t, err.Error(), "expected must be an integer")
}

func TestCompile_RejectsHookStepValues(t *testing.T) {
	p := twoSuitePlan()
	p.Suites[0].Teardown = []plan.Step{{Kind: plan.KindFalse}}

	_, err := Compile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suites[0].teardown[0]")
}

func TestCompile_RejectsUnknownKind(t *testing.T) {
	p := twoSuitePlan()
	p.Suites[0].Setup = []plan.Step{{Kind: "float32"}}

	_, err := Compile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown assertion kind "float32"`)
}

func TestRun_ResultPerSuite(t *testing.T) {
	res, err := RunPlan(twoSuitePlan(), testutil.NewRecorder(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "two", res.Plan)
	assert.Equal(t, []SuiteResult{
		{Name: "Alpha", Cases: 2, Failed: 1},
		{Name: "Beta", Cases: 3, Failed: 1},
	}, res.Suites)
	assert.Equal(t, uint32(5), res.TotalCases)
	assert.Equal(t, uint32(2), res.TotalFailed)
	assert.False(t, res.Pass())
	assert.Empty(t, res.Skipped)
}

func TestRun_HooksDoNotLeakIntoLaterSuites(t *testing.T) {
	rec := testutil.NewRecorder()
	res, err := RunPlan(twoSuitePlan(), rec, Options{})
	require.NoError(t, err)

	// Beta's first case has no assertions and no setup to lend it one.
	assert.Equal(t, uint32(1), res.Suites[1].Failed)
	assert.NotContains(t, rec.String(), "NoSetupHere"+strings.Repeat(".", 74-len("NoSetupHere"))+" PASS")
}

func TestRun_IsRepeatable(t *testing.T) {
	prog, err := Compile(twoSuitePlan())
	require.NoError(t, err)

	first := testutil.NewRecorder()
	second := testutil.NewRecorder()
	_, err = prog.Run(first, Options{})
	require.NoError(t, err)
	_, err = prog.Run(second, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}

func TestRun_SuiteFilter(t *testing.T) {
	rec := testutil.NewRecorder()
	res, err := RunPlan(twoSuitePlan(), rec, Options{SuiteFilter: "B*"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha"}, res.Skipped)
	require.Len(t, res.Suites, 1)
	assert.Equal(t, "Beta", res.Suites[0].Name)
	assert.True(t, strings.HasPrefix(rec.String(), "Beta Test Suite\r\n"))
}

func TestRun_FilterMatchingNothing(t *testing.T) {
	rec := testutil.NewRecorder()
	res, err := RunPlan(twoSuitePlan(), rec, Options{SuiteFilter: "Gamma"})
	require.NoError(t, err)

	assert.Equal(t, 0, rec.Len())
	assert.Equal(t, uint32(0), res.TotalCases)
	assert.True(t, res.Pass())
}

func TestRun_BadFilter(t *testing.T) {
	_, err := RunPlan(twoSuitePlan(), testutil.NewRecorder(), Options{SuiteFilter: "["})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFilter))
}

func TestRun_SinkError(t *testing.T) {
	sink := &testutil.FailingSink{Budget: 10}
	res, err := RunPlan(twoSuitePlan(), sink, Options{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, testutil.ErrSinkClosed))
	require.NotNil(t, res)
	assert.Equal(t, uint32(5), res.TotalCases, "a broken sink must not stop counting")
	assert.Equal(t, "Alpha Test", sink.String())
}

func TestRun_RunIDFromPlanOrOptions(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := RunPlan(twoSuitePlan(), testutil.NewRecorder(), Options{Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, "plan-run", res.RunID)
	assert.Contains(t, logs.String(), "run_id=plan-run")

	logs.Reset()
	res, err = RunPlan(twoSuitePlan(), testutil.NewRecorder(), Options{Logger: logger, RunID: "override"})
	require.NoError(t, err)
	assert.Equal(t, "override", res.RunID)
	assert.Contains(t, logs.String(), "run_id=override")
}

func TestRun_GeneratesRunIDWhenUnset(t *testing.T) {
	p := twoSuitePlan()
	p.RunID = ""

	res, err := RunPlan(p, testutil.NewRecorder(), Options{})
	require.NoError(t, err)
	assert.Len(t, res.RunID, 36)
}

func TestRun_SkippedSuitesAreLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := RunPlan(twoSuitePlan(), testutil.NewRecorder(), Options{Logger: logger, SuiteFilter: "Alpha"})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "suite skipped by filter")
	assert.Contains(t, logs.String(), "suite=Beta")
}

func TestRun_CustomPrimitives(t *testing.T) {
	var calls testutil.Calls
	prims := testie.Primitives{
		TextROM: func(a, b string) int {
			calls.Add("text-rom:" + a + "/" + b)
			return 0
		},
	}
	p := &plan.Plan{
		Name: "prims",
		Suites: []plan.Suite{{
			Name: "S",
			Cases: []plan.Case{{
				Name: "C",
				Assertions: []plan.Step{
					{Kind: plan.KindString, Source: plan.SourceROM, Expected: "x", Actual: "y"},
					{Kind: plan.KindString, Expected: "x", Actual: "x"},
				},
			}},
		}},
	}

	res, err := RunPlan(p, testutil.NewRecorder(), Options{Compare: &prims})
	require.NoError(t, err)
	assert.Equal(t, []string{"text-rom:x/y"}, calls.Events())
	assert.True(t, res.Pass())
}

func TestCompileInteger_PlatformWidth(t *testing.T) {
	tests := []struct {
		name   string
		kind   plan.Kind
		e, a   int64
		width  testie.Width
		passes bool
	}{
		{"int wraps at 16 bits", plan.KindInt, 65535, -1, testie.Width16, true},
		{"int does not wrap at 32 bits", plan.KindInt, 65535, -1, testie.Width32, false},
		{"uint wraps at 16 bits", plan.KindUint, 65536, 0, testie.Width16, true},
		{"hex wraps at 16 bits", plan.KindHex, 0x1FFFF, 0xFFFF, testie.Width16, true},
		{"uint32 ignores width", plan.KindUint32, 65536, 0, testie.Width16, false},
		{"int8 truncates", plan.KindInt8, 384, -128, testie.Width32, true},
		{"hex8 truncates", plan.KindHex8, 0x1AB, 0xAB, testie.Width32, true},
		{"uint16 truncates", plan.KindUint16, -1, 65535, testie.Width32, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := compileInteger(tt.kind, tt.e, tt.a, tt.width)
			require.NoError(t, err)

			r, err := testie.New(testie.Config{Sink: testutil.NewRecorder(), Width: tt.width})
			require.NoError(t, err)
			r.Case("C", func(r *testie.Run) { fn(r) })

			assert.Equal(t, tt.passes, r.TotalFailed() == 0)
		})
	}
}
