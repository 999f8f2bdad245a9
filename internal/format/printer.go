package format

import "io"

// Report layout.
const (
	// LineWidth is the width of a fill line, excluding the line terminator.
	LineWidth = 79

	// NameWidth is the width of the case name field.
	NameWidth = 74

	// EndLine terminates every report line.
	EndLine = "\r\n"

	// Terminator ends text values.
	Terminator = 0
)

// CharFunc adapts a putchar-style primitive to an io.ByteWriter.
type CharFunc func(c byte)

// WriteByte implements io.ByteWriter. It never fails.
func (f CharFunc) WriteByte(c byte) error {
	f(c)
	return nil
}

// Printer renders values into a sink one character per call.
//
// Write errors are sticky: after the first failure nothing more is sent to
// the sink and Err reports the failure.
type Printer struct {
	sink io.ByteWriter
	err  error
}

// NewPrinter returns a Printer writing to sink.
func NewPrinter(sink io.ByteWriter) *Printer {
	return &Printer{sink: sink}
}

// Err returns the first error returned by the sink, if any.
func (p *Printer) Err() error {
	return p.err
}

// Char writes a single character.
func (p *Printer) Char(c byte) {
	if p.err != nil {
		return
	}
	p.err = p.sink.WriteByte(c)
}

// String writes s up to its terminator.
func (p *Printer) String(s string) {
	p.Left(s, len(s))
}

// Left writes at most n characters of s, stopping early at the terminator.
func (p *Printer) Left(s string, n int) {
	for i := 0; i < len(s) && i < n; i++ {
		if s[i] == Terminator {
			return
		}
		p.Char(s[i])
	}
}

// Fill writes c n times.
func (p *Printer) Fill(c byte, n int) {
	for ; n > 0; n-- {
		p.Char(c)
	}
}

// FillLine writes a full-width run of c followed by a line terminator.
func (p *Printer) FillLine(c byte) {
	p.Fill(c, LineWidth)
	p.EndLine()
}

// EndLine writes the line terminator.
func (p *Printer) EndLine() {
	p.String(EndLine)
}

// Uint writes v in decimal without leading zeros.
func (p *Printer) Uint(v uint32) {
	if v == 0 {
		p.Char('0')
		return
	}

	started := false
	for divisor := uint32(1000000000); divisor != 0; divisor /= 10 {
		digit := v / divisor
		v %= divisor
		if digit != 0 || started {
			p.Char('0' + byte(digit))
			started = true
		}
	}
}

// Int writes v in decimal with a leading '-' when negative.
func (p *Printer) Int(v int32) {
	magnitude := uint32(v)
	if v < 0 {
		p.Char('-')
		magnitude = -magnitude
	}
	p.Uint(magnitude)
}

// Hex writes v in uppercase hexadecimal followed by 'h'.
//
// Leading zero digits are dropped until fewer than minDigits positions
// remain, so minDigits is the minimum number of digits written.
func (p *Printer) Hex(v uint32, minDigits int) {
	p.hexDigits(v, minDigits)
	p.Char('h')
}

// Memory writes each byte of b as two hex digits, separated by single spaces.
func (p *Printer) Memory(b []byte) {
	for i, c := range b {
		p.hexDigits(uint32(c), 2)
		if i != len(b)-1 {
			p.Char(' ')
		}
	}
}

func (p *Printer) hexDigits(v uint32, minDigits int) {
	for shift := 28; shift >= 0; shift -= 4 {
		if uint64(v) >= uint64(1)<<shift || minDigits > shift/4 {
			p.nibble(byte(v>>shift) & 0x0F)
		}
	}
}

func (p *Printer) nibble(n byte) {
	if n >= 0x0A {
		p.Char('A' + n - 0x0A)
		return
	}
	p.Char('0' + n)
}
