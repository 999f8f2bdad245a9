package testie

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/embeardded/testie/internal/compare"
)

// Memory classes and tagged values for expected text and byte sequences.
type (
	Source     = compare.Source
	Text       = compare.Text
	Bytes      = compare.Bytes
	Primitives = compare.Primitives
)

const (
	Working  = compare.Working
	ReadOnly = compare.ReadOnly
)

// Width is the integer width mode of the target.
type Width uint8

const (
	Width16 Width = 16
	Width32 Width = 32
)

var (
	// ErrInvalidWidth is returned by New for a width other than 16 or 32.
	ErrInvalidWidth = errors.New("integer width must be 16 or 32")

	// ErrNoSink is returned by New when no output sink is configured.
	ErrNoSink = errors.New("output sink is required")
)

// Config configures a Run.
type Config struct {
	// Sink receives the report one character at a time.
	Sink io.ByteWriter

	// Width selects the integer width mode. Zero means Width32.
	// It bounds the run counters: they saturate at the largest value of
	// the native unsigned integer of that width.
	Width Width

	// Compare holds the comparison primitives per memory class.
	// Nil, or nil fields, select strings.Compare and bytes.Compare.
	Compare *Primitives

	// Logger receives debug records about suites and cases.
	// Nil discards them.
	Logger *slog.Logger

	// RunID identifies the run in log records. Empty generates a UUID.
	RunID string
}

func (c Config) width() (Width, error) {
	switch c.Width {
	case 0:
		return Width32, nil
	case Width16, Width32:
		return c.Width, nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWidth, c.Width)
	}
}

// counterLimit returns the largest counter value for the width mode.
func (w Width) counterLimit() uint32 {
	if w == Width16 {
		return 0xFFFF
	}
	return 0xFFFFFFFF
}

// ParseWidth converts 16 or 32 to a Width.
func ParseWidth(bits int) (Width, error) {
	switch bits {
	case 16:
		return Width16, nil
	case 32:
		return Width32, nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWidth, bits)
	}
}
