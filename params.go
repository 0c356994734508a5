package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/restcontract/petstore-contract-tests/config"
	"github.com/restcontract/petstore-contract-tests/framework"
)

const (
	flagURL           = "url"
	flagAPIKey        = "api-key"
	flagRun           = "run"
	flagSkip          = "skip"
	flagDebug         = "debug"
	flagDebugAll      = "debug-all"
	flagVerbose       = "verbose"
	flagMock          = "mock"
	flagEndpointsFile = "endpoints-file"
	flagEnvFile       = "env-file"
	flagTimeout       = "timeout"
	flagRetries       = "retries"
)

var (
	cliFlagEnvFile = &cli.StringSliceFlag{
		Name:  flagEnvFile,
		Usage: "Read environment variables from this file (default .env, if present)",
	}
	cliFlagEndpointsFile = &cli.StringFlag{
		Name:  flagEndpointsFile,
		Usage: "YAML file of extra endpoint descriptors (overrides ENDPOINTS_FILE)",
	}
)

type commandParams struct {
	config   config.Config
	filters  framework.RegexFilters
	debug    bool
	debugAll bool
	verbose  bool
	mock     bool
}

// readParams builds the run parameters from the environment first and then lets any flags
// given on the command line override them.
func readParams(c *cli.Context) (commandParams, error) {
	var p commandParams
	cfg, err := config.Load(c.StringSlice(flagEnvFile)...)
	if err != nil {
		return p, err
	}
	if c.IsSet(flagURL) {
		cfg.APIBaseURL = c.String(flagURL)
	}
	if c.IsSet(flagAPIKey) {
		cfg.APIKey = c.String(flagAPIKey)
	}
	if c.IsSet(flagTimeout) {
		cfg.RequestTimeout = c.Duration(flagTimeout)
	}
	if c.IsSet(flagEndpointsFile) {
		cfg.EndpointsFile = c.String(flagEndpointsFile)
	}
	if c.IsSet(flagRetries) {
		cfg.Retries = c.Int(flagRetries)
	}
	p.config = cfg

	for _, pattern := range c.StringSlice(flagRun) {
		if err := p.filters.MustMatch.Set(pattern); err != nil {
			return p, err
		}
	}
	for _, pattern := range c.StringSlice(flagSkip) {
		if err := p.filters.MustNotMatch.Set(pattern); err != nil {
			return p, err
		}
	}
	p.debug = c.Bool(flagDebug) || cfg.Debug
	p.debugAll = c.Bool(flagDebugAll)
	p.verbose = c.Bool(flagVerbose)
	p.mock = c.Bool(flagMock)

	if p.mock {
		return p, nil
	}
	return p, cfg.Validate()
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagURL,
			Usage: "Base URL of the API under test (overrides API_BASE_URL)",
		},
		&cli.StringFlag{
			Name:  flagAPIKey,
			Usage: "Value of the api_key header (overrides API_KEY)",
		},
		&cli.StringSliceFlag{
			Name:  flagRun,
			Usage: "Regex pattern(s) to select tests to run",
		},
		&cli.StringSliceFlag{
			Name:  flagSkip,
			Usage: "Regex pattern(s) to select tests not to run",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "Print debug output for failed tests",
		},
		&cli.BoolFlag{
			Name:  flagDebugAll,
			Usage: "Print debug output for all tests",
		},
		&cli.BoolFlag{
			Name:    flagVerbose,
			Aliases: []string{"v"},
			Usage:   "Print step and request lines as they happen, with test banners",
		},
		&cli.BoolFlag{
			Name:  flagMock,
			Usage: "Test against the built-in mock API instead of --url",
		},
		&cli.DurationFlag{
			Name:  flagTimeout,
			Usage: "Timeout for each request (overrides REQUEST_TIMEOUT)",
			Value: 30 * time.Second,
		},
		&cli.IntFlag{
			Name:  flagRetries,
			Usage: "Run a failed test up to this many more times (overrides RETRIES)",
		},
		cliFlagEnvFile,
		cliFlagEndpointsFile,
	}
}
