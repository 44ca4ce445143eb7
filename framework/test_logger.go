package framework

// TestLogger receives progress notifications for each stage and subtest as the suite runs.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	// TestFinished is called once per started test. debugOutput holds whatever the test logged
	// through its debug logger, including the command lines of tool invocations.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	// TestSkipped is called instead of TestStarted for tests that were filtered out, or that
	// were not run because an earlier stage failed. A test that skips itself gets TestStarted
	// followed by TestSkipped, and no TestFinished.
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}
