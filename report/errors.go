package report

import (
	"fmt"
	"os"
)

// ReportError reports a compilation error: ie. erroneous input code.  The
// error is recorded and displayed, but compilation continues so that a single
// pass can surface as many errors as possible.  The span may be nil in which
// case no position information is printed.
func ReportError(span *TextSpan, message string, args ...interface{}) {
	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileError(rep.srcPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportFatal reports a fatal error and stops compilation immediately.  These
// are expected errors that compilation cannot recover from: unreadable input,
// invalid configuration, etc.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportICE reports an internal compiler error.  These are errors that result
// from a bug or unexpected condition occurring within the compiler itself:
// they are not intended to ever happen.  These errors are always displayed
// regardless of log level.
func ReportICE(message string, args ...interface{}) {
	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// -----------------------------------------------------------------------------

// DebugMessage displays a debug trace message at the current trace depth.
// Debug messages only display at the verbose log level.
func DebugMessage(message string, args ...interface{}) {
	if rep.logLevel >= LogLevelVerbose {
		displayDebugMessage(rep.debugDepth, fmt.Sprintf(message, args...))
	}
}

// IncDebug increases the indentation depth of subsequent debug messages.
func IncDebug() {
	rep.debugDepth++
}

// DecDebug decreases the indentation depth of subsequent debug messages.
func DecDebug() {
	if rep.debugDepth > 0 {
		rep.debugDepth--
	}
}
