package framework

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Skipped returns the results of tests that did not run.
func (r Results) Skipped() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if t.Skipped {
			ret = append(ret, t)
		}
	}
	return ret
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns the ID of a subtest of t.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the results, listing every failure with its errors.
func PrintResults(out io.Writer, results Results) {
	failed := color.New(color.FgRed, color.Bold)
	passed := color.New(color.FgGreen, color.Bold)

	skipped := len(results.Skipped())
	ran := len(results.Tests) - skipped
	if results.OK() {
		passed.Fprintf(out, "All tests passed")
		fmt.Fprintf(out, " (%d run, %d skipped)\n", ran, skipped)
		return
	}
	failed.Fprintf(out, "FAILED")
	fmt.Fprintf(out, ": %d of %d tests (%d skipped)\n", len(results.Failures), ran, skipped)
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(reformatError(err).Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}

// reformatError drops the stack-trace noise that testify puts in front of assertion messages,
// keeping the "Error:" and "Messages:" parts.
func reformatError(err error) error {
	s := err.Error()
	if !strings.Contains(s, "Error Trace:") {
		return err
	}
	var kept []string
	inTrace := false
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "Error Trace:"):
			inTrace = true
			continue
		case strings.HasPrefix(trimmed, "Error:"), strings.HasPrefix(trimmed, "Messages:"),
			strings.HasPrefix(trimmed, "Test:"):
			inTrace = false
		}
		if !inTrace {
			kept = append(kept, trimmed)
		}
	}
	return errors.New(strings.Join(kept, "\n"))
}
