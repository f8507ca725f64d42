// Package pool implements a small-object pool allocator that sits in
// front of the Go heap. It services many small, short-lived allocation
// requests (<=128 bytes) with no per-object header, segregating them
// into fixed size classes and refilling those classes in batches from a
// contiguous reserve carved out of the Go heap. Requests above the
// threshold are passed straight through to make/GC.
package pool
