package pool

import "os"

// Terminate is the default terminator invoked on irrecoverable
// exhaustion: it exits the process with exitOOM (STY_ALLOC_OOM). A
// pool can be built with WithTerminator to replace it, which is how
// the test suite drives the chunk allocator's escalation ladder into
// its terminal case without ending the test binary.
func Terminate(code int) {
	os.Exit(code)
}
