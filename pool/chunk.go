package pool

import (
	"log/slog"
	"unsafe"
)

// sysAlloc grows a pool's reserve by requesting a fresh slab from the
// Go heap. The slab is appended to Pool.retained so the garbage
// collector can never reclaim it out from under a live unsafe.Pointer
// still referencing the reserve or a free list.
//
// make never returns nil. This is the internal growth step of the
// escalation ladder, not the terminating large-object passthrough
// below, so a make that panics (for example on a length the runtime
// rejects) is recovered and reported back to the caller as nil instead
// of ending the process here — chunkAlloc still has a chance to
// recycle a block from a larger free list before giving up for good.
// A genuine out-of-memory condition inside the Go runtime is fatal and
// cannot be recovered, so it ends the process before reaching here.
func sysAlloc(p *Pool, n int) (buf []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("sty: system allocator exhausted, falling back", "pool", p.name, "id", p.id, "bytes", n, "cause", r)
			buf = nil
		}
	}()

	buf = make([]byte, n)
	p.retained = append(p.retained, buf)
	p.stats.sysAllocCount.Inc()
	return buf
}

// allocLarge services a request above MaxBytes directly from the Go
// heap, bypassing the reserve and free lists entirely: the large path
// never touches pool state, so the caller's remembered size is all
// Free needs.
func allocLarge(p *Pool, bytes int) (buf []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("sty: large allocation failed", "pool", p.name, "id", p.id, "bytes", bytes, "cause", r)
			p.terminate(exitOOM)
		}
	}()

	buf = make([]byte, bytes)
	return buf
}

// freeLarge drops the module's own reference to a large buffer;
// reclamation is left entirely to the garbage collector.
func freeLarge(buf []byte) {
	_ = buf
}

// chunkAlloc carves a contiguous run of blocks from the reserve,
// growing or recycling it under pressure. Given an aligned class size
// and a desired block count, it returns the run's address, lowering
// *nblocks on the way out but never below 1. It must be called with
// p.mu held, and never returns nil — irrecoverable exhaustion
// terminates the process instead (or, under a test double installed
// via WithTerminator, unwinds however that double decides to).
func (p *Pool) chunkAlloc(size int, nblocks *int) unsafe.Pointer {
	want := size * (*nblocks)
	avail := int(uintptr(p.end) - uintptr(p.start))

	// C1: the reserve fully covers the request.
	if avail >= want {
		result := p.start
		p.start = unsafe.Add(p.start, want)
		return result
	}

	// C2: the reserve covers at least one block, just not the whole batch.
	if avail >= size {
		*nblocks = avail / size
		total := size * (*nblocks)
		result := p.start
		p.start = unsafe.Add(p.start, total)
		return result
	}

	// C3: the reserve cannot cover a single block. Escalate.

	// Salvage the leftover. Safe only because invariant 1 guarantees
	// avail is a multiple of Align.
	if avail > 0 {
		j := FreelistIndex(avail)
		p.pushFree(j, p.start)
		p.stats.salvageCount.Inc()
		slog.Debug("sty: salvaged reserve leftover", "pool", p.name, "bytes", avail, "class", j)
	}

	// Request a fresh slab from the system allocator. The factor of 2
	// over want builds headroom so the next few refills come straight
	// from the reserve; the slack term amortizes future growth.
	bytesToAlloc := 2*want + RoundUp(int(p.totalUsed.Load()>>4))
	if buf := p.sysAllocFn(bytesToAlloc); buf != nil {
		p.start = unsafe.Pointer(&buf[0])
		p.end = unsafe.Add(p.start, bytesToAlloc)
		p.totalUsed.Add(int64(bytesToAlloc))
		p.stats.growCount.Inc()
		slog.Debug("sty: grew reserve", "pool", p.name, "bytes", bytesToAlloc)
		return p.chunkAlloc(size, nblocks)
	}

	// The system allocator is out. Walk classes from size's own class
	// upward and recycle the first non-empty larger free list into the
	// reserve.
	for class := FreelistIndex(size); class < FreeLists; class++ {
		classSize := (class + 1) * Align
		if block := p.popFree(class); block != nil {
			p.start = block
			p.end = unsafe.Add(p.start, classSize)
			p.stats.recycleCount.Inc()
			slog.Debug("sty: recycled free-list block into reserve", "pool", p.name, "class", class, "bytes", classSize)
			return p.chunkAlloc(size, nblocks)
		}
	}

	// No larger class has anything left to give. Give up.
	p.end = nil
	slog.Error("sty: pool exhausted, terminating", "pool", p.name, "id", p.id, "size", size)
	p.terminate(exitOOM)
	return nil
}

// refill obtains a batch of blocks from the chunk allocator, threads
// the surplus onto the matching free list, and returns the first
// block to the caller. It must be called with p.mu held.
func (p *Pool) refill(size int) unsafe.Pointer {
	n := p.refillBlocks
	chunk := p.chunkAlloc(size, &n)

	if n == 1 {
		return chunk
	}

	i := FreelistIndex(size)
	for k := n - 1; k >= 1; k-- {
		p.pushFree(i, unsafe.Add(chunk, k*size))
	}

	return chunk
}
