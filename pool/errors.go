package pool

import "github.com/pkg/errors"

// assertf panics with a pkg/errors-wrapped message when cond is false.
// Alloc and Free use it to reject negative allocation sizes, release
// sizes below 1 and empty release slices; invalid construction options
// are rejected separately by New, which panics with the option's
// wrapped error. All of these are programmer errors, not conditions
// callers can recover from.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(errors.Errorf(format, args...))
	}
}
