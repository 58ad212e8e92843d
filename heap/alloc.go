package heap

import "unsafe"

// Alloc reserves size bytes and returns the payload address, or nil if
// no free block is large enough. The allocator never grows the arena;
// a failed Alloc leaves the free list unchanged.
func (h *Heap) Alloc(size int) unsafe.Pointer {
	if size < 0 {
		return nil
	}

	e := size + G // always reserve the trailing guard
	req := e + D()

	off := h.policy(h, h.head, req)
	if off == noBlock {
		return nil
	}

	blockSize, _ := h.readFree(off)
	prev := h.predecessorOf(off)
	h.unlinkFree(prev, off)

	remaining := blockSize - e - D()
	if remaining <= Hmax()+G {
		// No room for a representable free remainder: give the whole
		// block to the caller instead of splitting it.
		e = blockSize - D()
	} else {
		newOff := off + e + Ha
		newSize := blockSize - e - Ha
		h.insertFree(newOff, newSize)
	}

	guard := h.guardFor(off)
	h.writeAlloc(off, e, guard)
	h.writeTrailer(off, e, guard)

	return h.payloadPtr(off)
}
