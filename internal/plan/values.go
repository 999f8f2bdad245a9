package plan

import (
	"fmt"
	"math"
)

// Integers returns the expected and actual values of an integer step.
// Callers truncate them to the assertion width.
func (s Step) Integers() (expected, actual int64, err error) {
	if expected, err = toInteger("expected", s.Expected); err != nil {
		return 0, 0, err
	}
	if actual, err = toInteger("actual", s.Actual); err != nil {
		return 0, 0, err
	}
	return expected, actual, nil
}

// Texts returns the expected and actual values of a string step.
func (s Step) Texts() (expected, actual string, err error) {
	if expected, err = toText("expected", s.Expected); err != nil {
		return "", "", err
	}
	if actual, err = toText("actual", s.Actual); err != nil {
		return "", "", err
	}
	return expected, actual, nil
}

// Bytes returns the expected and actual values of a memory step and the
// number of bytes to compare.
func (s Step) Bytes() (expected, actual []byte, n int, err error) {
	if expected, err = toBytes("expected", s.Expected); err != nil {
		return nil, nil, 0, err
	}
	if actual, err = toBytes("actual", s.Actual); err != nil {
		return nil, nil, 0, err
	}
	n = len(expected)
	if s.Length != nil {
		n = *s.Length
	}
	return expected, actual, n, nil
}

// Condition returns the actual value of a true, false or assert step.
func (s Step) Condition() (bool, error) {
	b, ok := s.Actual.(bool)
	if !ok {
		return false, fmt.Errorf("actual must be a boolean, got %s", describe(s.Actual))
	}
	return b, nil
}

func toInteger(field string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%s %d is out of range", field, n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("%s must be an integer, got %s", field, describe(v))
}

func toText(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", field, describe(v))
	}
	return s, nil
}

func toBytes(field string, v any) ([]byte, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a list of bytes, got %s", field, describe(v))
	}
	out := make([]byte, len(list))
	for i, item := range list {
		n, err := toInteger(fmt.Sprintf("%s[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > math.MaxUint8 {
			return nil, fmt.Errorf("%s[%d] %d does not fit in a byte", field, i, n)
		}
		out[i] = byte(n)
	}
	return out, nil
}

func describe(v any) string {
	if v == nil {
		return "nothing"
	}
	return fmt.Sprintf("%T %v", v, v)
}
