// Package compare equality-compares expected and actual values whose expected
// side may live in one of two memory classes.
//
// On some targets read-only storage (program memory) cannot be read through
// the same path as working memory, so each memory class gets its own pair of
// comparison primitives. The Adapter picks the primitive from the tag carried
// by the expected value. Actual values are always working memory.
package compare

import (
	"bytes"
	"strings"
)

// Source is the memory class an expected value lives in.
type Source int

const (
	// Working is ordinary writable memory.
	Working Source = iota
	// ReadOnly is storage that needs its own access path, such as program
	// memory on a microcontroller.
	ReadOnly
)

func (s Source) String() string {
	switch s {
	case Working:
		return "working"
	case ReadOnly:
		return "read-only"
	default:
		return "unknown"
	}
}

// Text is an expected null-terminated string tagged with its memory class.
type Text struct {
	Value  string
	Source Source
}

// Bytes is an expected byte sequence tagged with its memory class.
type Bytes struct {
	Value  []byte
	Source Source
}

// Primitives are the four comparison functions, one per value shape and
// memory class. Each returns zero when its arguments are equal and a
// non-zero ordering signal otherwise.
type Primitives struct {
	Text      func(expected, actual string) int
	TextROM   func(expected, actual string) int
	Memory    func(expected, actual []byte) int
	MemoryROM func(expected, actual []byte) int
}

// Default returns primitives backed by strings.Compare and bytes.Compare for
// both memory classes.
func Default() Primitives {
	return Primitives{
		Text:      strings.Compare,
		TextROM:   strings.Compare,
		Memory:    bytes.Compare,
		MemoryROM: bytes.Compare,
	}
}

// withDefaults fills nil primitives from Default.
func (p Primitives) withDefaults() Primitives {
	d := Default()
	if p.Text == nil {
		p.Text = d.Text
	}
	if p.TextROM == nil {
		p.TextROM = d.TextROM
	}
	if p.Memory == nil {
		p.Memory = d.Memory
	}
	if p.MemoryROM == nil {
		p.MemoryROM = d.MemoryROM
	}
	return p
}

// Adapter dispatches comparisons to the primitive matching the expected
// value's memory class.
type Adapter struct {
	prims Primitives
}

// NewAdapter returns an Adapter over prims. Nil primitives fall back to the
// defaults.
func NewAdapter(prims Primitives) *Adapter {
	return &Adapter{prims: prims.withDefaults()}
}

// Text compares two null-terminated strings.
func (a *Adapter) Text(expected Text, actual string) int {
	exp, act := Terminated(expected.Value), Terminated(actual)
	if expected.Source == ReadOnly {
		return a.prims.TextROM(exp, act)
	}
	return a.prims.Text(exp, act)
}

// Bytes compares the first n bytes of expected and actual.
//
// n <= 0 compares nothing and reports equality. When either side holds fewer
// than n bytes the sequences are unequal and the primitive is not consulted.
func (a *Adapter) Bytes(expected Bytes, actual []byte, n int) int {
	if n <= 0 {
		return 0
	}
	if len(expected.Value) < n || len(actual) < n {
		if len(expected.Value) < len(actual) {
			return -1
		}
		return 1
	}
	if expected.Source == ReadOnly {
		return a.prims.MemoryROM(expected.Value[:n], actual[:n])
	}
	return a.prims.Memory(expected.Value[:n], actual[:n])
}

// Terminated returns s cut at its first NUL byte.
func Terminated(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// Prefix returns at most the first n bytes of b.
func Prefix(b []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if len(b) < n {
		return b
	}
	return b[:n]
}
