package framework

import "time"

// TestOutcome describes how a test that was not skipped ended.
type TestOutcome struct {
	ID      TestID
	Failed  bool
	Elapsed time.Duration
	// Attempts is more than 1 only if the test failed and was run again.
	Attempts    int
	DebugOutput CapturedOutput
}

// TestLogger receives test lifecycle events as they happen.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestRetrying(id TestID, attempt int)
	TestFinished(outcome TestOutcome)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)         {}
func (n nullTestLogger) TestError(TestID, error)    {}
func (n nullTestLogger) TestRetrying(TestID, int)   {}
func (n nullTestLogger) TestFinished(TestOutcome)   {}
func (n nullTestLogger) TestSkipped(TestID, string) {}
