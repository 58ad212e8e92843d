package heap

import "unsafe"

// Free releases the block backing payload address z. A nil pointer, or
// one outside the arena's valid payload range, is silently ignored. A
// guard or trailer mismatch is treated as a programming error and
// panics rather than attempting recovery.
func (h *Heap) Free(z unsafe.Pointer) {
	if !h.inArena(z) {
		return
	}

	off := h.offsetFromPayload(z)
	size, guard := h.readAlloc(off)
	if !h.checkGuard(off, size, guard) {
		panic("heap: guard mismatch on free (corrupted block or double free)")
	}

	h.insertFree(off, size-D())
}
