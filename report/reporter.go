package report

// Reporter is responsible for reporting errors, debug traces, and other kinds
// of messages to the user during compilation.  The reporter respects the set
// log level.  Compilation is single-threaded so no synchronization is needed.
type Reporter struct {
	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The representative path of the source file being compiled.
	srcPath string

	// The number of errors recorded so far.
	errorCount int

	// The current indentation depth for debug messages.
	debugDepth int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user (default).
	LogLevelVerbose        // Displays errors and debug traces.
)

// rep is the global reporter instance.
var rep = &Reporter{logLevel: LogLevelError}

// InitReporter initializes the global error reporter with the given log level
// and source path.  Any previously recorded errors are discarded.
func InitReporter(logLevel int, srcPath string) {
	rep = &Reporter{
		logLevel: logLevel,
		srcPath:  srcPath,
	}
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return rep.errorCount > 0
}

// ErrorCount returns the number of errors detected so far.
func ErrorCount() int {
	return rep.errorCount
}
