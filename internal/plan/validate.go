package plan

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// ErrInvalidPlan is wrapped by every ValidationError.
var ErrInvalidPlan = errors.New("invalid plan")

// ValidationError reports the first problem found in a plan.
type ValidationError struct {
	// Path locates the offending value, like "suites[0].cases[2].assertions[1]".
	// Empty for plan-level problems.
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Unwrap makes errors.Is(err, ErrInvalidPlan) hold.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPlan
}

// schema is compiled once; a cue.Context is not safe for concurrent use, so
// every Validate call holds the lock.
var schema struct {
	once sync.Once
	mu   sync.Mutex
	ctx  *cue.Context
	plan cue.Value
	err  error
}

func planSchema() (*cue.Context, cue.Value, error) {
	schema.once.Do(func() {
		schema.ctx = cuecontext.New()
		v := schema.ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schema.err = fmt.Errorf("compiling plan schema: %w", err)
			return
		}
		schema.plan = v.LookupPath(cue.ParsePath("#Plan"))
	})
	return schema.ctx, schema.plan, schema.err
}

// Validate checks p against the plan schema and then checks that every step
// carries the values its kind needs.
func Validate(p *Plan) error {
	if err := validateSchema(p); err != nil {
		return err
	}
	for i := range p.Suites {
		if err := validateSuite(fmt.Sprintf("suites[%d]", i), &p.Suites[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateSchema(p *Plan) error {
	ctx, def, err := planSchema()
	if err != nil {
		return err
	}

	schema.mu.Lock()
	defer schema.mu.Unlock()

	data := ctx.Encode(p)
	if err := data.Err(); err != nil {
		return &ValidationError{Message: fmt.Sprintf("encoding plan: %v", err)}
	}
	if err := def.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError turns the first CUE error into a ValidationError with an
// indexed path.
func schemaError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	first := errs[0]
	format, args := first.Msg()
	return &ValidationError{
		Path:    cuePath(first.Path()),
		Message: fmt.Sprintf(format, args...),
	}
}

// cuePath renders ["suites", "0", "name"] as "suites[0].name".
func cuePath(selectors []string) string {
	var b strings.Builder
	for _, sel := range selectors {
		if _, err := strconv.Atoi(sel); err == nil {
			b.WriteString("[" + sel + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(sel)
	}
	return b.String()
}

func validateSuite(path string, s *Suite) error {
	for i := range s.Setup {
		if err := validateStep(fmt.Sprintf("%s.setup[%d]", path, i), &s.Setup[i]); err != nil {
			return err
		}
	}
	for i := range s.Teardown {
		if err := validateStep(fmt.Sprintf("%s.teardown[%d]", path, i), &s.Teardown[i]); err != nil {
			return err
		}
	}
	for i, c := range s.Cases {
		for j := range c.Assertions {
			stepPath := fmt.Sprintf("%s.cases[%d].assertions[%d]", path, i, j)
			if err := validateStep(stepPath, &c.Assertions[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateStep(path string, s *Step) error {
	invalid := func(format string, args ...any) error {
		return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
	}

	class := s.Kind.Class()
	if s.Source != "" && class != ClassText && class != ClassBytes {
		return invalid("source applies only to string and memory steps")
	}
	if s.Length != nil && class != ClassBytes {
		return invalid("length applies only to memory steps")
	}
	if s.Message != "" && s.Kind != KindAssert {
		return invalid("message applies only to assert steps")
	}

	switch class {
	case ClassNone:
		if s.Expected != nil || s.Actual != nil {
			return invalid("%s takes no values", s.Kind)
		}
	case ClassBool:
		if s.Expected != nil {
			return invalid("%s takes no expected value", s.Kind)
		}
		if _, err := s.Condition(); err != nil {
			return invalid("%v", err)
		}
		if s.Kind == KindAssert && s.Message == "" {
			return invalid("assert requires a message")
		}
	case ClassInteger:
		if _, _, err := s.Integers(); err != nil {
			return invalid("%v", err)
		}
	case ClassText:
		if _, _, err := s.Texts(); err != nil {
			return invalid("%v", err)
		}
	case ClassBytes:
		if _, _, _, err := s.Bytes(); err != nil {
			return invalid("%v", err)
		}
	default:
		return invalid("unknown assertion kind %q", s.Kind)
	}
	return nil
}
