// Package monitoring holds the process-wide diagnostic logger used by the
// inspector packages.
package monitoring

import (
	"log"
	"time"

	"github.com/banshee-data/lst.report/internal/timeutil"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf.
// SetLogger swaps it so tests can capture or mute output.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Prefixed returns a logger that writes through Logf with prefix prepended.
// The current Logf is resolved at call time, not when Prefixed is called.
func Prefixed(prefix string) func(format string, v ...interface{}) {
	return func(format string, v ...interface{}) {
		Logf(prefix+format, v...)
	}
}

// Timed logs how long a step took, measured on clock, once the returned
// func is called.
//
//	defer monitoring.Timed(clock, "open granule")()
func Timed(clock timeutil.Clock, step string) func() {
	start := clock.Now()
	return func() {
		Logf("%s took %s", step, clock.Since(start).Round(time.Millisecond))
	}
}
