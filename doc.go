// Package testie runs test suites and streams a fixed-format text report
// through a single character-output sink.
//
// It is meant for targets where no hosted test runner exists: the only thing
// the engine needs from the platform is an io.ByteWriter that accepts one
// character at a time, plus (optionally) comparison primitives for values
// kept in read-only storage.
//
// # Structure
//
// A Run is the explicit run context. Suites and cases are Procedures invoked
// with the Run; assertions are methods on the Run that update the current
// case's pass/fail counters and print diagnostics on failure.
//
//	w := bufio.NewWriter(os.Stdout)
//	defer w.Flush()
//	r, err := testie.New(testie.Config{Sink: w})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Suite("Parser", func(r *testie.Run) {
//	    r.Case("EmptyInput", func(r *testie.Run) {
//	        r.EqualUint8(0, parse(""))
//	    })
//	})
//
// # Report Format
//
// The report is byte-for-byte stable. Lines end with CRLF.
//
//	Parser Test Suite
//	-------------------------------------------------------------------------------
//	EmptyInput................................................................ PASS
//	BadInput.................................................................. FAIL
//	 - Expected 1 was 2
//	-------------------------------------------------------------------------------
//	2 Test Cases 1 Failed
//
// Case names occupy a 74-column field padded with '.', followed by one space.
// A failing case prints FAIL once, at its first failing assertion, and then
// one diagnostic line per failing assertion.
//
// # Zero-Assertion Cases
//
// A case that makes no assertions is counted as failed but prints neither
// PASS nor FAIL, so the next report line starts right after its name field.
// This is decided in one place, caseOutcome, and logged as a warning.
//
// # Concurrency
//
// A Run is not safe for concurrent use and must not be re-entered: a case
// must not run a suite on the same Run. Separate Runs are independent.
package testie
