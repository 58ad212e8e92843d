// Package heap implements a general-purpose allocator over a single,
// fixed, externally supplied byte arena: allocate, free, resize and
// size queries on top of an address-ordered, singly-linked free list,
// with pluggable placement and redzone corruption detection.
//
// The allocator keeps no global state of its own; every operation hangs
// off a *Heap value (see context.go). A thin package-level façade wraps
// a single default Heap for callers, such as libcshim, that want the
// classic process-wide malloc/free feel.
package heap

import "unsafe"

// freeHeader is the header written at the start of every free block.
// It is threaded through the free list in strictly ascending address
// order (see freelist.go).
type freeHeader struct {
	size uint64 // payload bytes, excluding this header
	next int64  // offset of the next free block, or noBlock
}

// allocHeader is the header written at the start of every allocated
// block. The guard is checked, along with a matching 8-byte trailer at
// the end of the payload, on every free/resize/size call.
type allocHeader struct {
	size  uint64 // payload bytes, including the trailing guard
	guard uint64
}

const (
	// Hf is the size of a free block's header.
	Hf = int(unsafe.Sizeof(freeHeader{}))
	// Ha is the size of an allocated block's header.
	Ha = int(unsafe.Sizeof(allocHeader{}))
	// G is the size of the guard cookie, written once in the header and
	// once more as the payload's trailing 8 bytes.
	G = 8
	// noBlock marks the absence of a block (end of free list, no right
	// neighbour, etc).
	noBlock = -1
)

// Hmax and Hmin are the larger and smaller of the two header sizes. D is
// the signed difference Ha - Hf, used to convert a free block's size
// accounting into an allocated block's when a block changes state.
var (
	hmax, hmin, d = computeHeaderConstants()
)

// Hmax, Hmin and D are exported as functions rather than package vars
// initialised inline, so the arithmetic above stays in one place and is
// easy to audit.
func computeHeaderConstants() (hmax, hmin, d int) {
	if Hf >= Ha {
		hmax, hmin = Hf, Ha
	} else {
		hmax, hmin = Ha, Hf
	}
	return hmax, hmin, Ha - Hf
}

// Hmax returns max(Hf, Ha).
func Hmax() int { return hmax }

// Hmin returns min(Hf, Ha).
func Hmin() int { return hmin }

// D returns the signed difference Ha - Hf.
func D() int { return d }

// header accessors. All of them take an offset relative to the arena's
// base address; the Heap is the only thing that knows how to turn an
// offset into a live pointer.

func (h *Heap) freeHeaderAt(off int) *freeHeader {
	return (*freeHeader)(unsafe.Add(h.base, off))
}

func (h *Heap) allocHeaderAt(off int) *allocHeader {
	return (*allocHeader)(unsafe.Add(h.base, off))
}

// readFree returns the size and next-offset fields of the free block at
// off.
func (h *Heap) readFree(off int) (size int, next int) {
	fh := h.freeHeaderAt(off)
	return int(fh.size), int(fh.next)
}

// writeFree overwrites the free block header at off.
func (h *Heap) writeFree(off, size, next int) {
	fh := h.freeHeaderAt(off)
	fh.size = uint64(size)
	fh.next = int64(next)
}

// readAlloc returns the size and guard fields of the allocated block at
// off.
func (h *Heap) readAlloc(off int) (size int, guard uint64) {
	ah := h.allocHeaderAt(off)
	return int(ah.size), ah.guard
}

// writeAlloc overwrites the allocated block header at off.
func (h *Heap) writeAlloc(off, size int, guard uint64) {
	ah := h.allocHeaderAt(off)
	ah.size = uint64(size)
	ah.guard = guard
}

// trailerOffset returns the offset of the 8-byte guard trailer for an
// allocated block at off with the given allocated size.
func trailerOffset(off, size int) int {
	return off + Ha + size - G
}

func (h *Heap) readTrailer(off, size int) uint64 {
	return *(*uint64)(unsafe.Add(h.base, trailerOffset(off, size)))
}

func (h *Heap) writeTrailer(off, size int, guard uint64) {
	*(*uint64)(unsafe.Add(h.base, trailerOffset(off, size))) = guard
}

// payloadPtr returns the address handed to the caller for the allocated
// block at off.
func (h *Heap) payloadPtr(off int) unsafe.Pointer {
	return unsafe.Add(h.base, off+Ha)
}

// offsetFromPayload turns a payload pointer back into a block offset.
func (h *Heap) offsetFromPayload(p unsafe.Pointer) int {
	return int(uintptr(p)-uintptr(h.base)) - Ha
}

// freePayloadPtr returns the address just past a free block's own
// header, used only for reporting free spans in Show/Dump.
func (h *Heap) freePayloadPtr(off int) unsafe.Pointer {
	return unsafe.Add(h.base, off+Hf)
}

// bytesAt views n bytes starting at p as a byte slice, for copying
// payload contents during a grow-by-relocation resize.
func bytesAt(p unsafe.Pointer, n int) []byte {
	if n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}
