// Package plan loads test plans: files that list suites, cases and the
// assertion steps each case performs.
//
// Plans are YAML (.yaml, .yml) or CUE (.cue). Both decode into the same Plan
// structure, and every plan is checked against an embedded CUE schema and
// then step by step before it is returned.
package plan

import (
	"golang.org/x/text/unicode/norm"

	"github.com/embeardded/testie/internal/compare"
)

// Plan is an explicit list of suites to run, in order.
type Plan struct {
	// Name identifies the plan in logs.
	Name string `yaml:"name" json:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Width is the platform word width, 16 or 32. Zero means 32.
	Width int `yaml:"width,omitempty" json:"width,omitempty"`

	// RunID fixes the run identifier for reproducible logs.
	// If empty, every run gets a fresh one.
	RunID string `yaml:"run_id,omitempty" json:"run_id,omitempty"`

	Suites []Suite `yaml:"suites" json:"suites"`

	// Path is the file the plan was loaded from.
	Path string `yaml:"-" json:"-"`
}

// Suite is a named group of cases with optional per-case hooks.
type Suite struct {
	Name string `yaml:"name" json:"name"`

	// Setup runs before every case of the suite. Its assertions count
	// toward the case.
	Setup []Step `yaml:"setup,omitempty" json:"setup,omitempty"`

	// Teardown runs after every case of the suite.
	Teardown []Step `yaml:"teardown,omitempty" json:"teardown,omitempty"`

	Cases []Case `yaml:"cases" json:"cases"`
}

// Case is a named list of assertion steps.
type Case struct {
	Name       string `yaml:"name" json:"name"`
	Assertions []Step `yaml:"assertions,omitempty" json:"assertions,omitempty"`
}

// Step is one assertion. Which fields apply depends on Kind.
type Step struct {
	Kind Kind `yaml:"kind" json:"kind"`

	Expected any `yaml:"expected,omitempty" json:"expected,omitempty"`
	Actual   any `yaml:"actual,omitempty" json:"actual,omitempty"`

	// Source is "rom" or "ram" (the default) for string and memory steps.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`

	// Length is the number of bytes a memory step compares. Defaults to the
	// length of the expected bytes.
	Length *int `yaml:"length,omitempty" json:"length,omitempty"`

	// Message is printed when an assert step fails.
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// Kind names an assertion.
type Kind string

// Assertion kinds.
const (
	KindFail   Kind = "fail"
	KindTrue   Kind = "true"
	KindFalse  Kind = "false"
	KindAssert Kind = "assert"

	KindInt8  Kind = "int8"
	KindInt16 Kind = "int16"
	KindInt32 Kind = "int32"
	KindInt   Kind = "int"

	KindUint8  Kind = "uint8"
	KindUint16 Kind = "uint16"
	KindUint32 Kind = "uint32"
	KindUint   Kind = "uint"

	KindHex   Kind = "hex"
	KindHex8  Kind = "hex8"
	KindHex16 Kind = "hex16"
	KindHex32 Kind = "hex32"

	KindString Kind = "string"
	KindMemory Kind = "memory"
)

// Class groups kinds by the values they take.
type Class int

const (
	ClassUnknown Class = iota
	ClassNone          // fail: no values
	ClassBool          // true, false, assert: a boolean actual
	ClassInteger       // signed, unsigned and hex kinds
	ClassText          // string
	ClassBytes         // memory
)

var kindClasses = map[Kind]Class{
	KindFail:   ClassNone,
	KindTrue:   ClassBool,
	KindFalse:  ClassBool,
	KindAssert: ClassBool,
	KindInt8:   ClassInteger,
	KindInt16:  ClassInteger,
	KindInt32:  ClassInteger,
	KindInt:    ClassInteger,
	KindUint8:  ClassInteger,
	KindUint16: ClassInteger,
	KindUint32: ClassInteger,
	KindUint:   ClassInteger,
	KindHex:    ClassInteger,
	KindHex8:   ClassInteger,
	KindHex16:  ClassInteger,
	KindHex32:  ClassInteger,
	KindString: ClassText,
	KindMemory: ClassBytes,
}

// Class returns the value class of k, or ClassUnknown.
func (k Kind) Class() Class {
	return kindClasses[k]
}

// Memory class names accepted in Step.Source.
const (
	SourceROM = "rom"
	SourceRAM = "ram"
)

// MemorySource maps Source to the memory class of the expected value.
func (s Step) MemorySource() compare.Source {
	if s.Source == SourceROM {
		return compare.ReadOnly
	}
	return compare.Working
}

// normalizeNames puts every suite and case name in Unicode NFC so names typed
// on different systems print the same bytes.
func normalizeNames(p *Plan) {
	p.Name = norm.NFC.String(p.Name)
	for i := range p.Suites {
		s := &p.Suites[i]
		s.Name = norm.NFC.String(s.Name)
		for j := range s.Cases {
			s.Cases[j].Name = norm.NFC.String(s.Cases[j].Name)
		}
	}
}
