package heap

import "unsafe"

// Resize changes the size of the block backing payload address z,
// possibly moving it, and returns the (possibly new) payload address.
func (h *Heap) Resize(z unsafe.Pointer, s int) unsafe.Pointer {
	if z == nil {
		return h.Alloc(s)
	}
	if !h.inArena(z) {
		return nil
	}
	if s == 0 {
		h.Free(z)
		return h.Alloc(0)
	}

	e := s + G
	off := h.offsetFromPayload(z)
	size, guard := h.readAlloc(off)
	if !h.checkGuard(off, size, guard) {
		panic("heap: guard mismatch on resize (corrupted block or double free)")
	}

	if e == size {
		return z
	}
	if e < size {
		return h.shrink(z, off, size, e)
	}
	return h.grow(z, off, s, size, e)
}

// shrink handles a Resize where the new size is smaller than the
// current one.
func (h *Heap) shrink(z unsafe.Pointer, off, size, e int) unsafe.Pointer {
	rOff := off + Ha + size
	prevR, _, rFree := h.locateFree(rOff)

	switch {
	case rFree:
		// The freed tail joins the already-free right neighbour.
		rSize, _ := h.readFree(rOff)
		h.unlinkFree(prevR, rOff)
		newOff := off + Ha + e
		newSize := rSize + (size - e)
		h.insertFree(newOff, newSize)

	case size-e <= Hmax()+G:
		// Remainder too small to represent as a free block.
		return z

	default:
		// Remainder is large enough to stand alone.
		newOff := off + Ha + e
		newSize := size - e - Hf
		h.insertFree(newOff, newSize)
	}

	guard := h.guardFor(off)
	h.writeAlloc(off, e, guard)
	h.writeTrailer(off, e, guard)
	return z
}

// grow handles a Resize where the new size is larger than the current
// one.
func (h *Heap) grow(z unsafe.Pointer, off, userSize, size, e int) unsafe.Pointer {
	need := e - size
	rOff := off + Ha + size

	var rSize int
	var prevR int
	rFree := false
	if rOff < h.n {
		prevR, _, rFree = h.locateFree(rOff)
		if rFree {
			rSize, _ = h.readFree(rOff)
		}
	}

	if !rFree || rSize+Hf < need {
		// Cannot grow in place; allocate, copy, free the original.
		newPtr := h.Alloc(userSize)
		if newPtr == nil {
			return nil
		}
		copyLen := size - G
		if userSize < copyLen {
			copyLen = userSize
		}
		copy(bytesAt(newPtr, copyLen), bytesAt(z, copyLen))
		h.Free(z)
		return newPtr
	}

	h.unlinkFree(prevR, rOff)

	if rSize-need+Hf <= Hmax()+G {
		// Leftover too small to keep as a free block; absorb R whole.
		size = size + rSize + Hf
		guard := h.guardFor(off)
		h.writeAlloc(off, size, guard)
		h.writeTrailer(off, size, guard)
		return z
	}

	// Keep a residual free block after absorbing enough of R.
	newFreeOff := off + Ha + e
	newFreeSize := rSize - need
	h.insertFree(newFreeOff, newFreeSize)

	guard := h.guardFor(off)
	h.writeAlloc(off, e, guard)
	h.writeTrailer(off, e, guard)
	return z
}
