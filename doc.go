// Package sty is the default-pool façade for the small-object pool
// allocator implemented in package pool. It binds a single
// process-wide default pool, created lazily on first use, and a
// named-pool registry so a process can run more than one independent
// pool side by side, with the package-level helpers bound to the
// default one.
package sty
