package framework

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID   TestID
	Errors   []error
	Skipped  bool
	Elapsed  time.Duration
	Attempts int
}

func (r *Results) add(result TestResult, failed bool) {
	r.Tests = append(r.Tests, result)
	if failed {
		r.Failures = append(r.Failures, result)
	}
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns how many tests ran, failed, and were skipped. The root of the test
// tree is not counted.
func (r Results) Counts() (ran, failed, skipped int) {
	for _, t := range r.Tests {
		if len(t.TestID.Path) == 0 {
			continue
		}
		if t.Skipped {
			skipped++
		} else {
			ran++
		}
	}
	for _, t := range r.Failures {
		if len(t.TestID.Path) != 0 {
			failed++
		}
	}
	return
}

// Flaky returns the tests that passed only after being retried.
func (r Results) Flaky() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if t.Attempts > 1 && len(t.Errors) == 0 && !t.Skipped {
			ret = append(ret, t)
		}
	}
	return ret
}

// PrintResults writes a summary of the run, listing each failed test and each test that needed
// more than one attempt to pass.
func PrintResults(out io.Writer, results Results) {
	ran, failed, skipped := results.Counts()
	if flaky := results.Flaky(); len(flaky) > 0 {
		fmt.Fprintf(out, "FLAKY TESTS (%d):\n", len(flaky))
		for _, f := range flaky {
			fmt.Fprintf(out, "* %s (passed on attempt %d)\n", f.TestID, f.Attempts)
		}
	}
	if results.OK() {
		fmt.Fprintf(out, "All tests passed (%d run, %d skipped)\n", ran, skipped)
		return
	}
	fmt.Fprintf(out, "FAILED TESTS (%d of %d run, %d skipped):\n", failed, ran, skipped)
	for _, f := range results.Failures {
		if len(f.TestID.Path) == 0 {
			continue
		}
		fmt.Fprintf(out, "* %s\n", f.TestID)
	}
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// reformatError tidies a testify failure message, which starts with a blank line and indents
// with tabs.
func reformatError(err error) error {
	msg := strings.TrimSpace(err.Error())
	return errors.New(strings.ReplaceAll(msg, "\t", "  "))
}
