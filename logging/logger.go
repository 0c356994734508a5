// Package logging builds the ldlog loggers that the suite writes step and request lines to.
package logging

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

// NewLoggers returns loggers that write to base. Debug output, such as the curl line for each
// request, is enabled only if debug is true.
func NewLoggers(base ldlog.BaseLogger, debug bool) ldlog.Loggers {
	loggers := ldlog.Loggers{}
	loggers.SetBaseLogger(base)
	if debug {
		loggers.SetMinLevel(ldlog.Debug)
	} else {
		loggers.SetMinLevel(ldlog.Info)
	}
	return loggers
}

// Multi returns a BaseLogger that writes every line to all of the non-nil loggers.
func Multi(loggers ...ldlog.BaseLogger) ldlog.BaseLogger {
	var targets multiLogger
	for _, l := range loggers {
		if l != nil {
			targets = append(targets, l)
		}
	}
	return targets
}

type multiLogger []ldlog.BaseLogger

func (m multiLogger) Println(values ...interface{}) {
	for _, l := range m {
		l.Println(values...)
	}
}

func (m multiLogger) Printf(format string, values ...interface{}) {
	for _, l := range m {
		l.Printf(format, values...)
	}
}
