package harness

import (
	"fmt"

	"github.com/embeardded/testie"
	"github.com/embeardded/testie/internal/plan"
)

// Program is a compiled plan.
type Program struct {
	name   string
	width  testie.Width
	runID  string
	suites []compiledSuite
}

type compiledSuite struct {
	name     string
	setup    testie.Procedure
	teardown testie.Procedure
	cases    []compiledCase
}

type compiledCase struct {
	name string
	body testie.Func
}

// step is one compiled assertion.
type step func(r *testie.Run)

// Compile turns a validated plan into a Program.
// Compile re-checks step values, so plans built in code need not go through
// plan.Validate first.
func Compile(p *plan.Plan) (*Program, error) {
	width := testie.Width32
	if p.Width != 0 {
		w, err := testie.ParseWidth(p.Width)
		if err != nil {
			return nil, fmt.Errorf("plan %q: %w", p.Name, err)
		}
		width = w
	}

	prog := &Program{
		name:   p.Name,
		width:  width,
		runID:  p.RunID,
		suites: make([]compiledSuite, 0, len(p.Suites)),
	}

	for i, s := range p.Suites {
		path := fmt.Sprintf("suites[%d]", i)
		setup, err := compileSteps(path+".setup", s.Setup, width)
		if err != nil {
			return nil, err
		}
		teardown, err := compileSteps(path+".teardown", s.Teardown, width)
		if err != nil {
			return nil, err
		}

		cs := compiledSuite{
			name:     s.Name,
			setup:    hook(setup),
			teardown: hook(teardown),
			cases:    make([]compiledCase, 0, len(s.Cases)),
		}
		for j, c := range s.Cases {
			steps, err := compileSteps(fmt.Sprintf("%s.cases[%d].assertions", path, j), c.Assertions, width)
			if err != nil {
				return nil, err
			}
			cs.cases = append(cs.cases, compiledCase{name: c.Name, body: sequence(steps)})
		}
		prog.suites = append(prog.suites, cs)
	}

	return prog, nil
}

// Name returns the plan name.
func (p *Program) Name() string { return p.name }

// Suites returns the suite names in run order.
func (p *Program) Suites() []string {
	names := make([]string, len(p.suites))
	for i, s := range p.suites {
		names[i] = s.name
	}
	return names
}

func compileSteps(path string, steps []plan.Step, width testie.Width) ([]step, error) {
	out := make([]step, 0, len(steps))
	for i, s := range steps {
		fn, err := compileStep(s, width)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		out = append(out, fn)
	}
	return out, nil
}

func sequence(steps []step) testie.Func {
	return func(r *testie.Run) {
		for _, s := range steps {
			s(r)
		}
	}
}

// hook returns nil for an empty step list so the run has no hook at all.
func hook(steps []step) testie.Procedure {
	if len(steps) == 0 {
		return nil
	}
	return sequence(steps)
}

func compileStep(s plan.Step, width testie.Width) (step, error) {
	switch s.Kind.Class() {
	case plan.ClassNone:
		return func(r *testie.Run) { r.Fail() }, nil

	case plan.ClassBool:
		cond, err := s.Condition()
		if err != nil {
			return nil, err
		}
		switch s.Kind {
		case plan.KindTrue:
			return func(r *testie.Run) { r.True(cond) }, nil
		case plan.KindFalse:
			return func(r *testie.Run) { r.False(cond) }, nil
		default:
			msg := s.Message
			return func(r *testie.Run) { r.Assert(cond, msg) }, nil
		}

	case plan.ClassInteger:
		expected, actual, err := s.Integers()
		if err != nil {
			return nil, err
		}
		return compileInteger(s.Kind, expected, actual, width)

	case plan.ClassText:
		expected, actual, err := s.Texts()
		if err != nil {
			return nil, err
		}
		text := testie.Text{Value: expected, Source: s.MemorySource()}
		return func(r *testie.Run) { r.AssertText(text, actual) }, nil

	case plan.ClassBytes:
		expected, actual, n, err := s.Bytes()
		if err != nil {
			return nil, err
		}
		data := testie.Bytes{Value: expected, Source: s.MemorySource()}
		return func(r *testie.Run) { r.AssertBytes(data, actual, n) }, nil
	}

	return nil, fmt.Errorf("unknown assertion kind %q", s.Kind)
}

// compileInteger truncates both values to the kind's size. Platform-sized
// kinds (int, uint, hex) follow the plan width.
func compileInteger(kind plan.Kind, e, a int64, width testie.Width) (step, error) {
	switch kind {
	case plan.KindInt8:
		return func(r *testie.Run) { r.EqualInt8(int8(e), int8(a)) }, nil
	case plan.KindInt16:
		return func(r *testie.Run) { r.EqualInt16(int16(e), int16(a)) }, nil
	case plan.KindInt32:
		return func(r *testie.Run) { r.EqualInt32(int32(e), int32(a)) }, nil
	case plan.KindInt:
		if width == testie.Width16 {
			return func(r *testie.Run) { r.EqualInt(int32(int16(e)), int32(int16(a))) }, nil
		}
		return func(r *testie.Run) { r.EqualInt(int32(e), int32(a)) }, nil

	case plan.KindUint8:
		return func(r *testie.Run) { r.EqualUint8(uint8(e), uint8(a)) }, nil
	case plan.KindUint16:
		return func(r *testie.Run) { r.EqualUint16(uint16(e), uint16(a)) }, nil
	case plan.KindUint32:
		return func(r *testie.Run) { r.EqualUint32(uint32(e), uint32(a)) }, nil
	case plan.KindUint:
		ue, ua := platformUnsigned(e, width), platformUnsigned(a, width)
		return func(r *testie.Run) { r.EqualUint(ue, ua) }, nil

	case plan.KindHex:
		ue, ua := platformUnsigned(e, width), platformUnsigned(a, width)
		return func(r *testie.Run) { r.EqualHex(ue, ua) }, nil
	case plan.KindHex8:
		return func(r *testie.Run) { r.EqualHex8(uint8(e), uint8(a)) }, nil
	case plan.KindHex16:
		return func(r *testie.Run) { r.EqualHex16(uint16(e), uint16(a)) }, nil
	case plan.KindHex32:
		return func(r *testie.Run) { r.EqualHex32(uint32(e), uint32(a)) }, nil
	}
	return nil, fmt.Errorf("unknown integer kind %q", kind)
}

func platformUnsigned(v int64, width testie.Width) uint32 {
	if width == testie.Width16 {
		return uint32(uint16(v))
	}
	return uint32(v)
}
