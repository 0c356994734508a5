package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restcontract/petstore-contract-tests/endpoints"
	"github.com/restcontract/petstore-contract-tests/framework"
)

func init() {
	color.NoColor = true
}

func testID(path ...string) framework.TestID {
	return framework.TestID{Path: path}
}

func TestConsoleLoggerCompactOutput(t *testing.T) {
	var out bytes.Buffer
	logger := &ConsoleTestLogger{Out: &out, DebugOutputOnFailure: true}
	var debug framework.CapturingLogger
	debug.Println("PetSteps.CreatePet()")

	logger.TestStarted(testID("create", "echo"))
	logger.TestFinished(framework.TestOutcome{ID: testID("create", "echo"), Attempts: 1, DebugOutput: debug.Output()})
	logger.TestStarted(testID("create", "schema"))
	logger.TestError(testID("create", "schema"), errors.New("line one\nline two"))
	logger.TestRetrying(testID("create", "schema"), 2)
	logger.TestFinished(framework.TestOutcome{
		ID:          testID("create", "schema"),
		Failed:      true,
		Elapsed:     1500 * time.Microsecond,
		Attempts:    2,
		DebugOutput: debug.Output(),
	})
	logger.TestSkipped(testID("delete"), "excluded by filter parameters")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "[create/echo]", lines[0])
	assert.Equal(t, "[create/schema]", lines[1])
	assert.Equal(t, "  line one", lines[2])
	assert.Equal(t, "  line two", lines[3])
	assert.Equal(t, "  RETRYING: create/schema (attempt 2)", lines[4])
	assert.Equal(t, "  FAILED: create/schema (2ms)", lines[5])
	assert.True(t, strings.HasPrefix(lines[6], "    DEBUG ["))
	assert.True(t, strings.HasSuffix(lines[6], "] PetSteps.CreatePet()"))
	assert.Equal(t, "  SKIPPED: delete (excluded by filter parameters)", lines[7])
}

func TestConsoleLoggerBanners(t *testing.T) {
	var out bytes.Buffer
	logger := &ConsoleTestLogger{Out: &out, Banners: true}
	logger.TestStarted(testID("read"))
	logger.TestFinished(framework.TestOutcome{ID: testID("read"), Elapsed: 40 * time.Millisecond, Attempts: 1})

	rule := strings.Repeat("=", bannerWidth)
	assert.Equal(t, "\n"+rule+"\n> Starting test: read\n"+rule+"\n  PASSED: read (40ms)\n"+rule+"\n", out.String())
}

func TestBuildRegistry(t *testing.T) {
	registry, err := buildRegistry("")
	require.NoError(t, err)
	assert.Len(t, registry.Descriptors(), 5)

	file := filepath.Join(t.TempDir(), "endpoints.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
endpoints:
  - key: GET_INVENTORY
    method: GET
    url: /store/inventory
`), 0o600))
	registry, err = buildRegistry(file)
	require.NoError(t, err)
	d, err := registry.Resolve("GET_INVENTORY")
	require.NoError(t, err)
	assert.Equal(t, endpoints.MethodGet, d.Method)

	_, err = buildRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunFlags(t *testing.T) {
	var names []string
	for _, f := range runFlags() {
		names = append(names, f.Names()[0])
	}
	assert.ElementsMatch(t, []string{
		flagURL, flagAPIKey, flagRun, flagSkip, flagDebug, flagDebugAll,
		flagVerbose, flagMock, flagTimeout, flagRetries, flagEnvFile, flagEndpointsFile,
	}, names)
}
