package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Format is a plan file syntax.
type Format int

const (
	FormatYAML Format = iota + 1
	FormatCUE
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatCUE:
		return "cue"
	default:
		return "unknown"
	}
}

// ErrUnsupportedFormat is returned for files that are neither YAML nor CUE.
var ErrUnsupportedFormat = errors.New("unsupported plan format")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads, decodes and validates a plan file.
// Unknown fields (typos) are rejected.
func Load(path string) (*Plan, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

// Parse decodes and validates plan data in the given format.
func Parse(data []byte, format Format) (*Plan, error) {
	var (
		p   *Plan
		err error
	)
	switch format {
	case FormatYAML:
		p, err = decodeYAML(data)
	case FormatCUE:
		p, err = decodeCUE(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	normalizeNames(p)
	return p, nil
}

func decodeYAML(data []byte) (*Plan, error) {
	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &p, nil
}

// decodeCUE evaluates a CUE plan and decodes its concrete JSON form through
// the YAML decoder, so both syntaxes share one set of field rules. Definitions
// and hidden fields in the file are available for reuse and are not exported.
func decodeCUE(data []byte) (*Plan, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename("plan.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("failed to evaluate CUE: %w", err)
	}
	js, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export CUE: %w", err)
	}
	return decodeYAML(js)
}
