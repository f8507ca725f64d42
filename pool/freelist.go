package pool

import "unsafe"

// freeLink views a free block's leading machine word as a pointer to
// the next free block of the same class. This is the union-coded
// block the design calls for: a free block carries no header beyond
// this single link, and an allocated block carries no header at all —
// both interpretations alias the same bytes. The reinterpretation goes
// through asLink; besides this file, only Pool.Stats uses it, to count
// the blocks on each free list. Callers touch a block's memory only
// through Pool.Alloc's returned slice.
type freeLink struct {
	next unsafe.Pointer
}

func asLink(block unsafe.Pointer) *freeLink {
	return (*freeLink)(block)
}

// pushFree prepends block to free list i. The caller must guarantee
// block is exactly the size of class i and is not already linked into
// any list. O(1).
func (p *Pool) pushFree(i int, block unsafe.Pointer) {
	asLink(block).next = p.freeLists[i]
	p.freeLists[i] = block
}

// popFree removes and returns the head of free list i, or nil if the
// list is empty. Checks for nil before dereferencing the popped
// block. O(1).
func (p *Pool) popFree(i int) unsafe.Pointer {
	head := p.freeLists[i]
	if head == nil {
		return nil
	}
	p.freeLists[i] = asLink(head).next
	return head
}
