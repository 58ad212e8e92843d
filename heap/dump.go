package heap

import (
	"fmt"
	"unsafe"

	"github.com/bytedance/gopkg/lang/mcache"
)

// dumpScratchSize is the size of the pooled scratch buffer Dump borrows
// to build its report, sized generously enough that a handful of blocks
// format without spilling into a fresh allocation.
const dumpScratchSize = 512

// Dump renders a human-readable snapshot of every block in the arena,
// in address order. It exists for debugging and tests, not for the core
// allocator API, but the report itself is built the way the rest of
// this module reaches for pooled buffers on a path that may run often
// during a stress test: borrowed from mcache and returned once the
// string has been copied out.
func (h *Heap) Dump() string {
	buf := mcache.Malloc(dumpScratchSize)
	defer mcache.Free(buf)
	line := buf[:0]

	h.Show(func(payload unsafe.Pointer, userSize int, isFree bool) {
		kind := "alloc"
		if isFree {
			kind = "free "
		}
		line = fmt.Appendf(line, "%s %p size=%d\n", kind, payload, userSize)
	})

	return string(line)
}
