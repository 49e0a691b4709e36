// Package logger is a small leveled logging facade over the standard log
// package. Verbosity is set once at startup (typically from config or a CLI
// flag) and call sites use Errorf/Infof/Debugf/Tracef directly.
//
// Levels, in increasing verbosity: Error < Info < Debug < Trace.
package logger

import (
	"log"
	"os"
)

// Level is a logging verbosity level; higher values log more.
type Level int

const (
	Error Level = iota // critical failures only
	Info               // high-level progress
	Debug              // diagnostic detail, e.g. quadrature subdivisions
	Trace              // per-evaluation detail, high volume
)

// current holds the active verbosity level. Only messages with level <=
// current are logged.
var current Level = Info

func init() {
	// Logs go to stderr so the valuation result on stdout stays clean for
	// pipelines.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetVerbosity sets the global verbosity. Called once during startup.
func SetVerbosity(v int) {
	current = Level(v)
}

func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		log.Printf(prefix+format, args...)
	}
}

// Errorf logs a failure that requires attention.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs a major lifecycle event.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs diagnostic output useful during development.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs fine-grained execution detail.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
