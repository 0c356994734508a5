// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// 2. Each test context captures its own debug output, which the TestLogger receives when the
// test finishes and can choose to print.
//
// 3. Tests can be selected or excluded by regular expressions matched against their full ID.
//
// 4. A failed test that has no subtests can be run again a limited number of times. Only the
// last attempt is recorded and reported to the TestLogger, and a test that passed on a later
// attempt is reported as flaky.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// domain-specific test API on top of the test context.
package framework
