package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/restcontract/petstore-contract-tests/framework"
)

const bannerWidth = 80

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	// Banners frames each test with separator lines.
	Banners bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	if c.Banners {
		rule := strings.Repeat("=", bannerWidth)
		fmt.Fprintf(c.Out, "\n%s\n> Starting test: %s\n%s\n", rule, id, rule)
		return
	}
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestRetrying(id framework.TestID, attempt int) {
	skipColor.Fprintf(c.Out, "  RETRYING: %s (attempt %d)\n", id, attempt)
}

func (c *ConsoleTestLogger) TestFinished(outcome framework.TestOutcome) {
	elapsed := outcome.Elapsed.Round(time.Millisecond)
	if outcome.Failed {
		failColor.Fprintf(c.Out, "  FAILED: %s (%s)\n", outcome.ID, elapsed)
	} else if c.Banners {
		passColor.Fprintf(c.Out, "  PASSED: %s (%s)\n", outcome.ID, elapsed)
	}
	if len(outcome.DebugOutput) > 0 &&
		((outcome.Failed && c.DebugOutputOnFailure) || (!outcome.Failed && c.DebugOutputOnSuccess)) {
		outcome.DebugOutput.Dump(c.Out, "    DEBUG ")
	}
	if c.Banners {
		fmt.Fprintln(c.Out, strings.Repeat("=", bannerWidth))
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s\n", id)
	} else {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", id, reason)
	}
}
