// Package libcshim is a thin interposition layer: it lazily brings up a
// default heap.Heap on first use, forwards the classic
// malloc/calloc/realloc/free quartet to it, and traces each call while
// guarding against the trace path re-entering the allocator it is
// logging.
//
// A real libc interposition shim overrides the process's malloc symbol
// directly (as original_source/src/malloc_stub.c does via the linker);
// Go programs cannot replace that symbol, so this package exposes the
// same four operations under Go names for anything that wants to sit in
// front of heap the way the C stub sits in front of mem.c.
package libcshim

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/timandy/routine"

	"github.com/ouassim-boulkamh/memory-allocator/heap"
	"github.com/ouassim-boulkamh/memory-allocator/memspace"
)

// DefaultArenaSize is the size of the arena lazily created on first use
// if SetArenaSize has not been called.
const DefaultArenaSize = 1 << 20 // 1MB

var (
	once      sync.Once
	arenaSize = DefaultArenaSize

	// inLib is goroutine-local, standing in for a C stub's __thread
	// gbl_in_lib: it guards only the trace path against re-entering
	// through its own fmt.Fprintf, never the heap's free-list state,
	// which gets no such protection.
	inLib = routine.NewThreadLocal[bool]()
)

// SetArenaSize overrides the size of the arena created on first
// Malloc/Calloc/Realloc/Free call. It has no effect once the shim has
// already been lazily initialised.
func SetArenaSize(n int) { arenaSize = n }

func lazyInit() {
	once.Do(func() {
		heap.Init(memspace.New(arenaSize))
	})
}

// trace prints a debug line to stderr unless the calling goroutine is
// already inside a trace call, preventing the fmt.Fprintf below (which
// may itself allocate) from recursing back into this package.
func trace(format string, args ...interface{}) {
	if inLib.Get() {
		return
	}
	inLib.Set(true)
	defer inLib.Set(false)
	fmt.Fprintf(os.Stderr, format, args...)
}

// Malloc allocates size bytes and returns the payload address, or nil.
func Malloc(size int) unsafe.Pointer {
	lazyInit()
	trace("malloc(%d)...", size)
	p := heap.Alloc(size)
	if p == nil {
		trace(" failed\n")
	} else {
		trace(" %p\n", p)
	}
	return p
}

// Calloc allocates count*size bytes and zeroes them before returning.
//
// The count*size multiplication is not checked for overflow: this is a
// preserved, documented limitation, not an oversight.
func Calloc(count, size int) unsafe.Pointer {
	lazyInit()
	total := count * size
	trace("calloc(%d, %d)...", count, size)
	p := heap.Alloc(total)
	if p == nil {
		trace(" failed\n")
		return nil
	}
	clear(unsafe.Slice((*byte)(p), total))
	trace(" %p\n", p)
	return p
}

// Realloc resizes the block at ptr to size bytes, returning the
// (possibly moved) payload address, or nil.
func Realloc(ptr unsafe.Pointer, size int) unsafe.Pointer {
	lazyInit()
	trace("realloc(%p, %d)...", ptr, size)
	p := heap.Resize(ptr, size)
	if p == nil {
		trace(" failed\n")
	} else {
		trace(" %p\n", p)
	}
	return p
}

// Free releases the block at ptr. A nil pointer is a no-op.
func Free(ptr unsafe.Pointer) {
	lazyInit()
	if ptr == nil {
		trace("free(NULL)\n")
		return
	}
	trace("free(%p)\n", ptr)
	heap.Free(ptr)
}
