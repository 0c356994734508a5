package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"

	"github.com/restcontract/petstore-contract-tests/config"
	"github.com/restcontract/petstore-contract-tests/endpoints"
	"github.com/restcontract/petstore-contract-tests/framework"
	"github.com/restcontract/petstore-contract-tests/petstore"
	"github.com/restcontract/petstore-contract-tests/petstoremock"
	"github.com/restcontract/petstore-contract-tests/pettests"
)

func main() {
	app := cli.NewApp()
	app.Name = "petstore-contract-tests"
	app.Usage = "Contract tests for the Petstore pet API"
	app.Commands = []*cli.Command{
		{
			Name:   "run",
			Usage:  "Run the contract test suite",
			Flags:  runFlags(),
			Action: runSuite,
		},
		{
			Name:  "endpoints",
			Usage: "List the registered endpoints",
			Flags: []cli.Flag{
				cliFlagEnvFile,
				cliFlagEndpointsFile,
			},
			Action: listEndpoints,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\n%s\n\n", err)
		os.Exit(1)
	}
}

func runSuite(c *cli.Context) error {
	params, err := readParams(c)
	if err != nil {
		return err
	}
	registry, err := buildRegistry(params.config.EndpointsFile)
	if err != nil {
		return err
	}

	baseURL := params.config.APIBaseURL
	if params.mock {
		server := httptest.NewServer(petstoremock.New())
		defer server.Close()
		baseURL = server.URL
	}
	fmt.Printf("Testing against %s\n", baseURL)

	env := &pettests.Environment{
		BaseURL:     baseURL,
		HTTPClient:  &http.Client{Timeout: params.config.RequestTimeout},
		Registry:    registry,
		Headers:     params.config.Headers(),
		Generator:   petstore.NewRandomGenerator(),
		TestTimeout: params.config.RequestTimeout * 4,
		Retries:     params.config.Retries,
	}
	if params.verbose {
		env.Output = log.New(os.Stdout, "", log.LstdFlags)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
		Banners:              params.verbose,
	}

	results := pettests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		return errors.New("some tests failed")
	}
	return nil
}

func listEndpoints(c *cli.Context) error {
	cfg, err := config.Load(c.StringSlice(flagEnvFile)...)
	if err != nil {
		return err
	}
	if c.IsSet(flagEndpointsFile) {
		cfg.EndpointsFile = c.String(flagEndpointsFile)
	}
	registry, err := buildRegistry(cfg.EndpointsFile)
	if err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("KEY", "METHOD", "URL", "PATH PARAMS", "REQUEST MODEL", "RESPONSE MODEL")
	for _, d := range registry.Descriptors() {
		table.AddRow(d.Key, d.Method, d.URL, yesNo(d.URL.IsTemplated()), d.RequestModelName, d.ResponseModelName)
	}
	fmt.Println(table)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func buildRegistry(endpointsFile string) (*endpoints.Registry, error) {
	var extra []endpoints.Descriptor
	if endpointsFile != "" {
		var err error
		if extra, err = endpoints.LoadFile(endpointsFile, nil); err != nil {
			return nil, err
		}
	}
	return petstore.NewRegistry(extra...)
}
