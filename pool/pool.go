package pool

import (
	"sync"
	"unsafe"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Pool is a small-object pool allocator. It services allocation
// requests of at most MaxBytes bytes from segregated free lists,
// refilling those lists in batches from a contiguous reserve carved
// out of the Go heap; requests above MaxBytes pass straight through
// to make/GC. A zero-value Pool is not usable — construct one with
// New.
type Pool struct {
	mu        sync.Mutex
	start     unsafe.Pointer // reserve cursor; nil when empty
	end       unsafe.Pointer // one-past-the-end of the reserve
	freeLists [FreeLists]unsafe.Pointer

	totalUsed atomic.Int64 // cumulative bytes ever requested from sysAlloc
	retained  [][]byte     // every slab sysAlloc has ever handed out

	id           uuid.UUID
	name         string
	stats        poolStats
	refillBlocks int
	sysAllocFn   func(n int) []byte
	terminate    func(code int)
}

// New constructs a zero-initialized, immediately usable pool: an
// empty reserve and empty free lists, plus a fresh UUID and a name
// derived from it.
func New(opts ...Option) *Pool {
	p := &Pool{
		id:           uuid.New(),
		refillBlocks: DefaultRefillBlocks,
		terminate:    Terminate,
	}
	p.sysAllocFn = func(n int) []byte { return sysAlloc(p, n) }

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(p); err != nil {
			panic(errors.Wrap(err, "pool: invalid option"))
		}
	}

	if p.name == "" {
		p.name = p.id.String()
	}

	return p
}

// ID returns the pool's unique identifier.
func (p *Pool) ID() uuid.UUID { return p.id }

// Name returns the pool's human-readable name.
func (p *Pool) Name() string { return p.name }

// Alloc returns a slice of exactly bytes length, drawn from the
// pool's free lists when bytes <= MaxBytes and from the Go heap
// directly otherwise. A request of 0 is treated as 1 so Alloc never
// hands back an empty slice. Alloc never returns a nil slice; on
// irrecoverable exhaustion the process terminates instead.
func (p *Pool) Alloc(bytes int) []byte {
	assertf(bytes >= 0, "pool: negative allocation size %d", bytes)

	if bytes == 0 {
		bytes = 1
	}

	if bytes > MaxBytes {
		return allocLarge(p, bytes)
	}

	i := FreelistIndex(bytes)

	p.mu.Lock()
	defer p.mu.Unlock()

	if block := p.popFree(i); block != nil {
		return unsafe.Slice((*byte)(block), bytes)
	}

	block := p.refill(RoundUp(bytes))
	return unsafe.Slice((*byte)(block), bytes)
}

// Free returns buf, previously obtained from Alloc(size) on this same
// pool, to its class's free list. size must match the value passed to
// Alloc exactly — double-release and release-with-wrong-size are
// undefined.
func (p *Pool) Free(buf []byte, size int) {
	assertf(size >= 1, "pool: release size must be >= 1, got %d", size)
	assertf(len(buf) > 0, "pool: release of an empty buffer")

	if size > MaxBytes {
		freeLarge(buf)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pushFree(FreelistIndex(size), unsafe.Pointer(&buf[0]))
}
