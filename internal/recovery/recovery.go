// internal/recovery/recovery.go
package recovery

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandlePanic is deferred at the top of main. It reports the panic with a
// stack trace on stderr and exits with code 1.
func HandlePanic() {
	if r := recover(); r != nil {
		report(r)
		os.Exit(1)
	}
}

// HandlePanicFunc reports the panic, runs cleanup, then exits with code 1.
// Deferred in goroutines that must release resources before dying, such as
// the scheduler loop holding the audio device open.
func HandlePanicFunc(cleanup func()) {
	if r := recover(); r != nil {
		report(r)
		if cleanup != nil {
			cleanup()
		}
		os.Exit(1)
	}
}

// report writes directly to stderr so a panic is visible even when debug
// logging is disabled.
func report(r any) {
	_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
}
