// Package logger provides a minimal verbosity-gated logger for the CLI.
package logger

import (
	"log"
	"sync/atomic"
)

var verbose atomic.Bool

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// Debugf logs only when verbose mode is enabled.
func Debugf(format string, args ...any) {
	if verbose.Load() {
		log.Printf("DEBUG: "+format, args...)
	}
}

// Errorf always logs.
func Errorf(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}
