package pettests

import (
	"context"
	"time"

	"github.com/restcontract/petstore-contract-tests/assertion"
	"github.com/restcontract/petstore-contract-tests/dispatch"
	"github.com/restcontract/petstore-contract-tests/framework"
	"github.com/restcontract/petstore-contract-tests/logging"
	"github.com/restcontract/petstore-contract-tests/steps"
	"github.com/restcontract/petstore-contract-tests/transport"
)

const defaultTestTimeout = time.Second * 30

// T represents a test or subtest in the Petstore contract suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by our lower-level framework package.
//
// Every T has its own step objects, whose loggers write into the test's captured debug output, so
// a failed test shows exactly which steps and requests it made.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T.
type T struct {
	context *framework.Context
	env     *Environment
	pets    steps.Pets
}

func newTestScope(c *framework.Context, env *Environment) *T {
	loggers := logging.NewLoggers(logging.Multi(c.DebugLogger(), env.Output), true)
	client := transport.NewClient(env.BaseURL, env.HTTPClient, loggers)
	registry := env.Registry
	d := dispatch.New(registry, client, loggers, dispatch.WithDefaultHeaders(env.Headers))
	return &T{
		context: c,
		env:     env,
		pets:    steps.NewPetSteps(steps.NewBase(d, registry), env.Generator, loggers),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The specified function receives a new T instance, with its own step objects.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Skip stops the test and reports it as skipped.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Pets returns the pet steps for this test.
func (t *T) Pets() steps.Pets {
	return t.pets
}

// Context returns a context for one step call, bounded by the suite's per-test timeout.
func (t *T) Context() (context.Context, context.CancelFunc) {
	timeout := t.env.TestTimeout
	if timeout <= 0 {
		timeout = defaultTestTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// RequireMatch stops the test unless actual structurally matches expected.
func (t *T) RequireMatch(expected, actual interface{}, options ...assertion.Option) {
	assertion.RequireMatch(t, expected, actual, options...)
}
