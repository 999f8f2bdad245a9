package testie

import "github.com/embeardded/testie/internal/compare"

// Report tokens.
const (
	tokenPass     = "PASS"
	tokenFail     = "FAIL"
	tokenExpected = " - Expected "
	tokenWas      = " was "
	tokenMessage  = " - "

	msgExpectedTrue  = "Expected TRUE was FALSE"
	msgExpectedFalse = "Expected FALSE was TRUE"
	msgForcedFail    = "Assertion set to fail"
)

// pass records a passed assertion.
func (r *Run) pass() {
	r.bump(&r.casePasses)
}

// fail records a failed assertion and prints the case's FAIL banner if this
// is its first failure.
func (r *Run) fail() {
	first := r.caseFails == 0
	r.bump(&r.caseFails)
	if first {
		r.out.String(tokenFail)
		r.out.EndLine()
	}
}

// Assert passes when cond is true. On failure it prints msg as the
// diagnostic line.
func (r *Run) Assert(cond bool, msg string) {
	if cond {
		r.pass()
		return
	}
	r.fail()
	r.out.String(tokenMessage)
	r.out.String(msg)
	r.out.EndLine()
}

// True passes when cond is true.
func (r *Run) True(cond bool) {
	r.Assert(cond, msgExpectedTrue)
}

// False passes when cond is false.
func (r *Run) False(cond bool) {
	r.Assert(!cond, msgExpectedFalse)
}

// Fail always fails.
func (r *Run) Fail() {
	r.Assert(false, msgForcedFail)
}

// AssertNumber passes when expected equals actual. With hexDigits zero both
// values are printed in decimal on failure, otherwise in hexadecimal with at
// least hexDigits digits.
func (r *Run) AssertNumber(expected, actual uint32, hexDigits int) {
	if expected == actual {
		r.pass()
		return
	}
	r.fail()

	number := r.out.Uint
	if hexDigits > 0 {
		number = func(v uint32) { r.out.Hex(v, hexDigits) }
	}
	r.out.String(tokenExpected)
	number(expected)
	r.out.String(tokenWas)
	number(actual)
	r.out.EndLine()
}

// AssertSigned passes when expected equals actual; failures print both in
// signed decimal.
func (r *Run) AssertSigned(expected, actual int32) {
	if expected == actual {
		r.pass()
		return
	}
	r.fail()
	r.out.String(tokenExpected)
	r.out.Int(expected)
	r.out.String(tokenWas)
	r.out.Int(actual)
	r.out.EndLine()
}

// AssertText passes when the null-terminated strings are equal according to
// the comparison primitive for expected's memory class.
func (r *Run) AssertText(expected Text, actual string) {
	if r.cmp.Text(expected, actual) == 0 {
		r.pass()
		return
	}
	r.fail()
	r.out.String(tokenExpected)
	r.quoted(func() { r.out.String(expected.Value) })
	r.out.String(tokenWas)
	r.quoted(func() { r.out.String(actual) })
	r.out.EndLine()
}

// AssertBytes passes when the first n bytes of expected and actual are equal
// according to the comparison primitive for expected's memory class.
func (r *Run) AssertBytes(expected Bytes, actual []byte, n int) {
	if r.cmp.Bytes(expected, actual, n) == 0 {
		r.pass()
		return
	}
	r.fail()
	r.out.String(tokenExpected)
	r.quoted(func() { r.out.Memory(compare.Prefix(expected.Value, n)) })
	r.out.String(tokenWas)
	r.quoted(func() { r.out.Memory(compare.Prefix(actual, n)) })
	r.out.EndLine()
}

func (r *Run) quoted(body func()) {
	r.out.Char('"')
	body()
	r.out.Char('"')
}

// EqualUint8 compares two 8-bit unsigned values.
func (r *Run) EqualUint8(expected, actual uint8) {
	r.AssertNumber(uint32(expected), uint32(actual), 0)
}

// EqualUint16 compares two 16-bit unsigned values.
func (r *Run) EqualUint16(expected, actual uint16) {
	r.AssertNumber(uint32(expected), uint32(actual), 0)
}

// EqualUint32 compares two 32-bit unsigned values.
func (r *Run) EqualUint32(expected, actual uint32) {
	r.AssertNumber(expected, actual, 0)
}

// EqualUint is EqualUint32.
func (r *Run) EqualUint(expected, actual uint32) {
	r.EqualUint32(expected, actual)
}

// EqualHex compares two unsigned values and prints failures in hexadecimal
// without zero padding.
func (r *Run) EqualHex(expected, actual uint32) {
	r.AssertNumber(expected, actual, 1)
}

// EqualHex8 compares two 8-bit values, printing failures as two hex digits.
func (r *Run) EqualHex8(expected, actual uint8) {
	r.AssertNumber(uint32(expected), uint32(actual), 2)
}

// EqualHex16 compares two 16-bit values, printing failures as four hex digits.
func (r *Run) EqualHex16(expected, actual uint16) {
	r.AssertNumber(uint32(expected), uint32(actual), 4)
}

// EqualHex32 compares two 32-bit values, printing failures as eight hex digits.
func (r *Run) EqualHex32(expected, actual uint32) {
	r.AssertNumber(expected, actual, 8)
}

// EqualInt8 compares two 8-bit signed values.
func (r *Run) EqualInt8(expected, actual int8) {
	r.AssertSigned(int32(expected), int32(actual))
}

// EqualInt16 compares two 16-bit signed values.
func (r *Run) EqualInt16(expected, actual int16) {
	r.AssertSigned(int32(expected), int32(actual))
}

// EqualInt32 compares two 32-bit signed values.
func (r *Run) EqualInt32(expected, actual int32) {
	r.AssertSigned(expected, actual)
}

// EqualInt is EqualInt32.
func (r *Run) EqualInt(expected, actual int32) {
	r.EqualInt32(expected, actual)
}

// EqualString compares text whose expected value is in working memory.
func (r *Run) EqualString(expected, actual string) {
	r.AssertText(Text{Value: expected, Source: Working}, actual)
}

// EqualStringROM compares text whose expected value is in read-only storage.
func (r *Run) EqualStringROM(expected, actual string) {
	r.AssertText(Text{Value: expected, Source: ReadOnly}, actual)
}

// EqualMemory compares n bytes whose expected value is in working memory.
func (r *Run) EqualMemory(expected, actual []byte, n int) {
	r.AssertBytes(Bytes{Value: expected, Source: Working}, actual, n)
}

// EqualMemoryROM compares n bytes whose expected value is in read-only
// storage.
func (r *Run) EqualMemoryROM(expected, actual []byte, n int) {
	r.AssertBytes(Bytes{Value: expected, Source: ReadOnly}, actual, n)
}
