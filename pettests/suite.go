package pettests

import (
	"net/http"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"

	"github.com/restcontract/petstore-contract-tests/endpoints"
	"github.com/restcontract/petstore-contract-tests/framework"
	"github.com/restcontract/petstore-contract-tests/petstore"
)

// Environment is what every test in the suite shares.
type Environment struct {
	// BaseURL is the root of the API under test, such as "https://petstore.swagger.io/v2".
	BaseURL    string
	HTTPClient *http.Client
	Registry   *endpoints.Registry
	// Headers are sent with every request.
	Headers   map[string]string
	Generator petstore.Generator
	// Output, if set, also receives every test's step and request lines as they happen.
	Output      ldlog.BaseLogger
	TestTimeout time.Duration
	// Retries is how many more times a failed test is run before it counts as failed.
	Retries int
}

// RunTestSuite runs every pet contract test against env.
func RunTestSuite(
	env *Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("create", DoCreatePetTests)
		t.Run("read", DoReadPetTests)
		t.Run("update", DoUpdatePetTests)
		t.Run("delete", DoDeletePetTests)
		t.Run("find by status", DoFindPetsByStatusTests)
	}, framework.WithRetries(env.Retries))
}
