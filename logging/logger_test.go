package logging

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type lineLogger struct {
	lines []string
}

func (l *lineLogger) Println(values ...interface{}) {
	l.lines = append(l.lines, strings.TrimSuffix(fmt.Sprintln(values...), "\n"))
}

func (l *lineLogger) Printf(format string, values ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, values...))
}

func TestDebugLevel(t *testing.T) {
	var out bytes.Buffer
	NewLoggers(log.New(&out, "", log.LstdFlags), false).Debug("hidden line")
	assert.NotContains(t, out.String(), "hidden line")

	NewLoggers(log.New(&out, "", log.LstdFlags), true).Debug("shown line")
	assert.Contains(t, out.String(), "shown line")
}

func TestInfoIsAlwaysEnabled(t *testing.T) {
	var out bytes.Buffer
	loggers := NewLoggers(log.New(&out, "", log.LstdFlags), false)
	loggers.Info("PetSteps.CreatePet()")
	assert.Contains(t, out.String(), "PetSteps.CreatePet()")
}

func TestMultiWritesToEveryLogger(t *testing.T) {
	a, b := &lineLogger{}, &lineLogger{}
	m := Multi(a, nil, b)
	m.Println("one")
	m.Printf("two")
	assert.Equal(t, []string{"one", "two"}, a.lines)
	assert.Equal(t, []string{"one", "two"}, b.lines)

	loggers := NewLoggers(m, false)
	loggers.Warn("three")
	assert.Len(t, a.lines, 3)
	assert.Contains(t, a.lines[2], "three")
}

func TestMultiWithNoLoggers(t *testing.T) {
	m := Multi()
	m.Println("nothing")
	m.Printf("nothing")
}
