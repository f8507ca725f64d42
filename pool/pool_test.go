package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsZeroInitializedAndUsable(t *testing.T) {
	at := assert.New(t)

	p := New()
	at.NotEmpty(p.ID().String())
	at.Equal(p.ID().String(), p.Name())
	at.NotNil(p.Alloc(1))
}

func TestWithNameOverridesDefault(t *testing.T) {
	p := New(WithName("checkout"))
	assert.Equal(t, "checkout", p.Name())
}

func TestWithNameRejectsEmpty(t *testing.T) {
	assert.Panics(t, func() { New(WithName("")) })
}

func TestWithRefillBlocksRejectsNonPositive(t *testing.T) {
	assert.Panics(t, func() { New(WithRefillBlocks(0)) })
	assert.Panics(t, func() { New(WithRefillBlocks(-3)) })
}

// A zero-byte request behaves like a one-byte request and always
// returns a usable block.
func TestAllocZeroByteBehavesLikeOne(t *testing.T) {
	at := assert.New(t)

	p := New()
	zero := p.Alloc(0)
	one := p.Alloc(1)

	at.Len(zero, 1)
	at.Len(one, 1)
}

// Concurrently live allocations address disjoint ranges.
func TestAllocNonOverlap(t *testing.T) {
	require := require.New(t)

	p := New()

	const n = 500
	bufs := make([][]byte, n)
	for i := range bufs {
		bufs[i] = p.Alloc(7)
		bufs[i][0] = byte(i)
	}

	seen := make(map[uintptr]bool, n)
	for _, b := range bufs {
		for i := range b {
			addr := addrOf(b, i)
			require.False(seen[addr], "byte at %#x addressed by more than one live allocation", addr)
			seen[addr] = true
		}
	}

	for i, b := range bufs {
		require.Equal(byte(i), b[0], "writes through one allocation must not leak into another")
	}
}

func addrOf(b []byte, i int) uintptr {
	return uintptr(unsafe.Pointer(&b[i]))
}

// Releasing a block and then requesting the same class again returns
// it LIFO.
func TestFreeThenAllocReturnsSameBlockLIFO(t *testing.T) {
	at := assert.New(t)

	p := New()
	buf := p.Alloc(5)
	addr := &buf[0]

	p.Free(buf, 5)
	next := p.Alloc(6) // same class as 5: FreelistIndex(5) == FreelistIndex(6) == 0

	at.Same(addr, &next[0])
}

// TotalUsed never decreases across a sequence of allocate/release
// pairs.
func TestTotalUsedIsMonotonic(t *testing.T) {
	at := assert.New(t)

	p := New()
	var last int64

	for i := 0; i < 200; i++ {
		size := (i % 16) + 1
		buf := p.Alloc(size)
		p.Free(buf, size)

		cur := p.Stats().TotalUsed
		at.GreaterOrEqual(cur, last)
		last = cur
	}
}

func TestAllocNegativeSizePanics(t *testing.T) {
	p := New()
	assert.Panics(t, func() { p.Alloc(-1) })
}

func TestFreeZeroSizePanics(t *testing.T) {
	p := New()
	buf := p.Alloc(8)
	assert.Panics(t, func() { p.Free(buf, 0) })
}

func TestFreeEmptyBufferPanics(t *testing.T) {
	p := New()
	assert.Panics(t, func() { p.Free(nil, 8) })
}

func TestLargeAllocAndFreeBypassPool(t *testing.T) {
	at := assert.New(t)

	p := New()
	buf := p.Alloc(MaxBytes + 1)
	at.Len(buf, MaxBytes+1)

	p.Free(buf, MaxBytes+1)

	at.EqualValues(0, p.Stats().TotalUsed)
}
