package heap

// The free list is a singly-linked, address-ordered chain threaded
// through freeHeader.next fields, with h.head as the list head. Go gives
// us no safe way to recover a node's predecessor from the address of
// the pointer that refers to it (the trick a C implementation would use,
// reconstructing it via offsetof); instead every operation that needs a
// predecessor walks the list for it explicitly. See DESIGN.md Open
// Question 4.

// predecessorOf walks the free list looking for the node whose next
// field points at target, returning noBlock if target is the head (or
// is not present at all).
func (h *Heap) predecessorOf(target int) int {
	prev := noBlock
	cur := h.head
	for cur != noBlock && cur != target {
		prev = cur
		_, next := h.readFree(cur)
		cur = next
	}
	if cur == noBlock {
		return noBlock
	}
	return prev
}

// locateFree walks the free list to the first node whose offset is >=
// off, returning its predecessor (noBlock if none), that node's offset
// (noBlock if the walk ran off the end), and whether the node found is
// exactly off.
func (h *Heap) locateFree(off int) (prev, cur int, found bool) {
	prev = noBlock
	cur = h.head
	for cur != noBlock && cur < off {
		prev = cur
		_, next := h.readFree(cur)
		cur = next
	}
	return prev, cur, cur == off
}

// unlinkFree removes the free block at target from the list, given its
// predecessor (noBlock if target is the head).
func (h *Heap) unlinkFree(prev, target int) {
	_, next := h.readFree(target)
	if prev == noBlock {
		h.head = next
		return
	}
	psize, _ := h.readFree(prev)
	h.writeFree(prev, psize, next)
}

// insertFree inserts a free block of the given size at offset x into
// the free list, restoring the list's sort order (no duplicates) and
// its no-adjacent-free-blocks invariant. Both the right- and
// left-adjacency checks are performed as part of the same insertion,
// so three consecutive free spans collapse into one in a single call.
func (h *Heap) insertFree(x, size int) {
	prev, cur, _ := h.locateFree(x)
	right := cur // R: the free block that would follow x, or noBlock
	next := right
	mergedSize := size

	if right != noBlock {
		rsize, rnext := h.readFree(right)
		if x+mergedSize+Hf == right {
			// Right-adjacent: fuse R into x.
			mergedSize += Hf + rsize
			next = rnext
		}
	}

	if prev != noBlock {
		psize, _ := h.readFree(prev)
		if prev+psize+Hf == x {
			// Left-adjacent: fuse x (and anything already fused into it)
			// into the previous free block. No header needs writing at x;
			// it is now interior to prev's payload.
			h.writeFree(prev, psize+Hf+mergedSize, next)
			return
		}
	}

	h.writeFree(x, mergedSize, next)
	if prev == noBlock {
		h.head = x
		return
	}
	psize, _ := h.readFree(prev)
	h.writeFree(prev, psize, x)
}
