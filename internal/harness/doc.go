// Package harness runs test plans through the testie engine.
//
// A plan is compiled once into a Program: every assertion step becomes a
// closure over the matching testie.Run method, and every suite's setup and
// teardown steps become its hooks. A Program can then be run any number of
// times against any sink.
//
// # Usage
//
//	p, err := plan.Load("plans/smoke.yaml")
//	if err != nil {
//	    return err
//	}
//	prog, err := harness.Compile(p)
//	if err != nil {
//	    return err
//	}
//	w := bufio.NewWriter(os.Stdout)
//	res, err := prog.Run(w, harness.Options{})
//	if err != nil {
//	    return err
//	}
//	if err := w.Flush(); err != nil {
//	    return err
//	}
//	if !res.Pass() {
//	    os.Exit(1)
//	}
//
// # Integer Width
//
// Steps of kind int, uint and hex take the plan's width: on a 16-bit plan
// their values are truncated to 16 bits before comparison, like a C cast.
// Kinds with an explicit size always use that size.
//
// # Deterministic Output
//
// The report depends only on the plan. Run identifiers appear in log records
// and never in the report, so golden report files are stable across runs.
package harness
