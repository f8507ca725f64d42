package pool

import "github.com/pkg/errors"

// Option configures a Pool at construction time via the functional
// options pattern. The grid constants in const.go stay compile-time
// constants regardless of which options are set.
type Option func(*Pool) error

// WithName attaches a human-readable name to the pool. It is surfaced
// on every slog line the pool emits and returned by Name.
// Pools created without this option are named after their UUID.
func WithName(name string) Option {
	return func(p *Pool) error {
		if name == "" {
			return errors.New("pool name must not be empty")
		}
		p.name = name
		return nil
	}
}

// WithRefillBlocks overrides DefaultRefillBlocks for this pool.
func WithRefillBlocks(n int) Option {
	return func(p *Pool) error {
		if n <= 0 {
			return errors.Errorf("refill blocks must be positive, got %d", n)
		}
		p.refillBlocks = n
		return nil
	}
}

// WithTerminator replaces the function invoked on irrecoverable
// exhaustion. Production code has no reason to set this; it exists so
// tests can exercise the chunk allocator's terminal OOM case without
// calling os.Exit.
func WithTerminator(fn func(code int)) Option {
	return func(p *Pool) error {
		if fn == nil {
			return errors.New("terminator must not be nil")
		}
		p.terminate = fn
		return nil
	}
}

// WithSysAlloc replaces the function used to grow the reserve from
// the Go heap. Test-only: lets the chunk allocator's escalation
// ladder be exercised under a simulated allocator failure by
// returning nil instead of a fresh slab.
func WithSysAlloc(fn func(n int) []byte) Option {
	return func(p *Pool) error {
		if fn == nil {
			return errors.New("sysAlloc must not be nil")
		}
		p.sysAllocFn = fn
		return nil
	}
}
