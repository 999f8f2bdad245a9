package format

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(fn func(p *Printer)) string {
	var buf bytes.Buffer
	fn(NewPrinter(&buf))
	return buf.String()
}

func TestPrinter_Uint(t *testing.T) {
	tests := []struct {
		in   uint32
		want string
	}{
		{0, "0"},
		{7, "7"},
		{10, "10"},
		{1000000005, "1000000005"},
		{math.MaxUint32, "4294967295"},
	}

	for _, tt := range tests {
		got := render(func(p *Printer) { p.Uint(tt.in) })
		assert.Equal(t, tt.want, got, "Uint(%d)", tt.in)
	}
}

func TestPrinter_Int(t *testing.T) {
	tests := []struct {
		in   int32
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-1, "-1"},
		{-300, "-300"},
		{math.MaxInt32, "2147483647"},
		{math.MinInt32, "-2147483648"},
	}

	for _, tt := range tests {
		got := render(func(p *Printer) { p.Int(tt.in) })
		assert.Equal(t, tt.want, got, "Int(%d)", tt.in)
	}
}

func TestPrinter_Hex(t *testing.T) {
	tests := []struct {
		in        uint32
		minDigits int
		want      string
	}{
		{0, 1, "0h"},
		{0, 0, "h"},
		{255, 2, "FFh"},
		{4096, 1, "1000h"},
		{0x0A, 4, "000Ah"},
		{0xBEEF, 2, "BEEFh"},
		{0x12, 8, "00000012h"},
		{math.MaxUint32, 1, "FFFFFFFFh"},
		{1, 12, "00000001h"},
	}

	for _, tt := range tests {
		got := render(func(p *Printer) { p.Hex(tt.in, tt.minDigits) })
		assert.Equal(t, tt.want, got, "Hex(%#x, %d)", tt.in, tt.minDigits)
	}
}

func TestPrinter_Memory(t *testing.T) {
	got := render(func(p *Printer) { p.Memory([]byte{0x01, 0x02, 0xAB, 0x00}) })
	if diff := cmp.Diff("01 02 AB 00", got); diff != "" {
		t.Errorf("Memory mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "", render(func(p *Printer) { p.Memory(nil) }))
	assert.Equal(t, "7F", render(func(p *Printer) { p.Memory([]byte{0x7F}) }))
}

func TestPrinter_StringStopsAtTerminator(t *testing.T) {
	assert.Equal(t, "ok", render(func(p *Printer) { p.String("ok") }))
	assert.Equal(t, "ok", render(func(p *Printer) { p.String("ok\x00hidden") }))
	assert.Equal(t, "", render(func(p *Printer) { p.String("") }))
}

func TestPrinter_Left(t *testing.T) {
	assert.Equal(t, "abc", render(func(p *Printer) { p.Left("abcdef", 3) }))
	assert.Equal(t, "ab", render(func(p *Printer) { p.Left("ab", 5) }))
	assert.Equal(t, "a", render(func(p *Printer) { p.Left("a\x00bc", 3) }))
	assert.Equal(t, "", render(func(p *Printer) { p.Left("abc", 0) }))
}

func TestPrinter_FillLine(t *testing.T) {
	got := render(func(p *Printer) { p.FillLine('-') })

	want := strings.Repeat("-", LineWidth) + "\r\n"
	assert.Equal(t, want, got)
	assert.Len(t, got, 81)
}

func TestPrinter_Fill(t *testing.T) {
	assert.Equal(t, "....", render(func(p *Printer) { p.Fill('.', 4) }))
	assert.Equal(t, "", render(func(p *Printer) { p.Fill('.', 0) }))
	assert.Equal(t, "", render(func(p *Printer) { p.Fill('.', -3) }))
}

type limitedSink struct {
	buf   bytes.Buffer
	limit int
}

var errSinkFull = errors.New("sink full")

func (s *limitedSink) WriteByte(c byte) error {
	if s.buf.Len() >= s.limit {
		return errSinkFull
	}
	return s.buf.WriteByte(c)
}

func TestPrinter_ErrorIsSticky(t *testing.T) {
	sink := &limitedSink{limit: 3}
	p := NewPrinter(sink)

	p.String("abcdef")
	require.ErrorIs(t, p.Err(), errSinkFull)
	assert.Equal(t, "abc", sink.buf.String())

	// Raising the limit does not resume output.
	sink.limit = 100
	p.String("more")
	assert.Equal(t, "abc", sink.buf.String())
}

func TestCharFunc(t *testing.T) {
	var got []byte
	p := NewPrinter(CharFunc(func(c byte) { got = append(got, c) }))

	p.Uint(12)
	p.EndLine()

	assert.Equal(t, "12\r\n", string(got))
	assert.NoError(t, p.Err())
}
