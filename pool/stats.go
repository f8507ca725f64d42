package pool

import "go.uber.org/atomic"

// ClassStat is a snapshot of one size class's free-list depth.
type ClassStat struct {
	Class     int
	BlockSize int
	Free      int
}

// Stats is a point-in-time snapshot of a pool's bookkeeping counters.
// It exists purely for observability; nothing in the allocator's
// control flow consults it.
type Stats struct {
	TotalUsed     int64
	SysAllocCount int64
	SalvageCount  int64
	GrowCount     int64
	RecycleCount  int64
	PerClass      []ClassStat
}

// poolStats holds the live atomic counters behind Stats. Every
// counter is readable without taking Pool.mu.
type poolStats struct {
	sysAllocCount atomic.Int64
	salvageCount  atomic.Int64
	growCount     atomic.Int64
	recycleCount  atomic.Int64
}

// Stats returns a snapshot of the pool's counters. The atomic fields
// are read lock-free; PerClass walks the free lists and therefore
// takes the pool's lock for the duration of the walk.
func (p *Pool) Stats() Stats {
	s := Stats{
		TotalUsed:     p.totalUsed.Load(),
		SysAllocCount: p.stats.sysAllocCount.Load(),
		SalvageCount:  p.stats.salvageCount.Load(),
		GrowCount:     p.stats.growCount.Load(),
		RecycleCount:  p.stats.recycleCount.Load(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s.PerClass = make([]ClassStat, FreeLists)
	for i := 0; i < FreeLists; i++ {
		free := 0
		for b := p.freeLists[i]; b != nil; b = asLink(b).next {
			free++
		}
		s.PerClass[i] = ClassStat{Class: i, BlockSize: (i + 1) * Align, Free: free}
	}

	return s
}
