package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	retries    int
}

// Option changes how Run runs tests.
type Option func(*environment)

// WithRetries makes Run repeat a failed test up to n more times. Only a test that started no
// subtests is repeated, since a group passes or fails by its own assertions only.
func WithRetries(n int) Option {
	return func(env *environment) {
		if n > 0 {
			env.retries = n
		}
	}
}

// Context is the state of one running test. Tests report failures through it with Errorf and
// FailNow, so it can be passed to testify's assert and require functions.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	hasSubtests bool
	errors      []error
	// held is set while the test may still be retried. Error lines are kept in pending then, and
	// only the final attempt's are reported.
	held    bool
	pending []error
}

// Run runs action as the root of a test tree and returns the results of every test it started.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
	options ...Option,
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	for _, o := range options {
		o(env)
	}
	c := &Context{env: env}
	env.results.add(c.run(action), c.failed)
	return env.results
}

func (c *Context) run(action func(*Context)) (result TestResult) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil && !c.skipped {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.logError(addError)
			}
		}
		result = TestResult{
			TestID:   c.id,
			Errors:   c.errors,
			Skipped:  c.skipped,
			Elapsed:  time.Since(started),
			Attempts: 1,
		}
	}()

	action(c)
	return
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. The subtest is skipped without running if the filter excludes its ID.
func (c *Context) Run(name string, action func(*Context)) {
	c.hasSubtests = true
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}

	var c1 *Context
	var result TestResult
	for attempt := 1; ; attempt++ {
		c1 = &Context{
			id:   id,
			env:  c.env,
			held: c.env.retries > 0,
		}
		result = c1.run(action)
		result.Attempts = attempt
		if !c1.failed || c1.hasSubtests || attempt > c.env.retries {
			break
		}
		c.env.testLogger.TestRetrying(id, attempt+1)
	}
	c.env.results.add(result, c1.failed)
	for _, err := range c1.pending {
		c.env.testLogger.TestError(id, err)
	}

	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
		return
	}
	c.env.testLogger.TestFinished(TestOutcome{
		ID:          id,
		Failed:      c1.failed,
		Elapsed:     result.Elapsed,
		Attempts:    result.Attempts,
		DebugOutput: c1.debugLogger.Output(),
	})
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.logError(reformatError(err))
}

func (c *Context) logError(err error) {
	if c.held {
		c.pending = append(c.pending, err)
		return
	}
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug adds a line to this test's captured debug output.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
