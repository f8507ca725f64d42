package sty

import (
	"sync"

	"github.com/bjut-zky/sty/pool"
)

var (
	defaultOnce sync.Once
	defaultPool *pool.Pool
)

// Default returns the process-wide default pool, creating it with
// sync.Once on first use.
func Default() *pool.Pool {
	defaultOnce.Do(func() {
		defaultPool = pool.New(pool.WithName("default"))
	})
	return defaultPool
}

// Alloc allocates bytes from the default pool. See (*pool.Pool).Alloc.
func Alloc(bytes int) []byte {
	return Default().Alloc(bytes)
}

// Free releases buf, previously obtained from Alloc(size), back to
// the default pool. See (*pool.Pool).Free.
func Free(buf []byte, size int) {
	Default().Free(buf, size)
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*pool.Pool)
)

// Named returns the pool registered under name, creating a fresh one
// on first request. Independent named pools never share a reserve or
// free lists with each other or with the default pool.
func Named(name string) *pool.Pool {
	registryMu.Lock()
	defer registryMu.Unlock()

	if p, ok := registry[name]; ok {
		return p
	}

	p := pool.New(pool.WithName(name))
	registry[name] = p
	return p
}
