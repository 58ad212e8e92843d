package heap

import "unsafe"

// Size returns the user-visible size most recently established for the
// block backing z (by Alloc or a subsequent Resize), or 0 if z is nil,
// out of the arena, or fails its guard check. Size has no side effects.
func (h *Heap) Size(z unsafe.Pointer) int {
	if !h.inArena(z) {
		return 0
	}
	off := h.offsetFromPayload(z)
	size, guard := h.readAlloc(off)
	if !h.checkGuard(off, size, guard) {
		return 0
	}
	return size - G
}

// Show walks every block in the arena exactly once, in address order,
// invoking visit with the block's payload address, its user-visible
// size, and whether it is free.
//
// For an allocated block the payload address is offset+Ha and the user
// size is size-G (the guard is not shown). For a free block the
// "payload" is the address just past its own header (offset+Hf) and
// the user size is its raw free-list size field, since a free block
// reserves no trailing guard (a judgment call documented in DESIGN.md).
func (h *Heap) Show(visit func(payload unsafe.Pointer, userSize int, isFree bool)) {
	off := 0
	freeCur := h.head
	for off < h.n {
		if off == freeCur {
			size, next := h.readFree(off)
			visit(h.freePayloadPtr(off), size, true)
			freeCur = next
			off += Hf + size
		} else {
			size, _ := h.readAlloc(off)
			visit(h.payloadPtr(off), size-G, false)
			off += Ha + size
		}
	}
}
