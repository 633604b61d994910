package lc3

import (
	"fmt"
	"time"
)

// CaseRunner is the per-case hook a test suite supplies. It receives a
// case identity and reports pass/fail; a returned error marks the case
// failed with that error's kind and message, and never aborts the run.
type CaseRunner interface {
	RunCase(caseNum int) (bool, error)
}

// CaseFunc adapts a plain function to the CaseRunner interface.
type CaseFunc func(caseNum int) (bool, error)

func (f CaseFunc) RunCase(caseNum int) (bool, error) { return f(caseNum) }

// Result records the outcome of one test case. Randomized cases are
// identified by ID, named cases by Name.
type Result struct {
	ID      int
	Name    string
	Passed  bool
	Elapsed time.Duration
	Err     error
}

// Reason renders the failure reason for reports: "Assertion Failed"
// when the hook returned false, otherwise "<Kind>: <message>".
func (r Result) Reason() string {
	if r.Passed {
		return ""
	}
	if r.Err == nil {
		return "Assertion Failed"
	}
	return fmt.Sprintf("%s: %s", ErrorKind(r.Err), r.Err.Error())
}

// Identity renders the case identity for reports.
func (r Result) Identity() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("Case %d", r.ID)
}

// runCase invokes the hook for one case, converting a panic or returned
// error into a failed Result so sibling cases keep running.
func runCase(runner CaseRunner, id int) (res Result) {
	res.ID = id
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		if p := recover(); p != nil {
			res.Passed = false
			res.Err = fmt.Errorf("panic: %v", p)
		}
	}()
	ok, err := runner.RunCase(id)
	res.Passed = ok && err == nil
	res.Err = err
	return res
}
