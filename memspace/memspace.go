// Package memspace supplies the backing byte arena a heap allocator is
// handed at initialisation: a fixed base address and a fixed length,
// stable for the lifetime of the process.
package memspace

import (
	"fmt"
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Provider is the contract a heap allocator expects from its memory space:
// a stable base address and a stable size, queried once at init.
type Provider interface {
	// Base returns the address of the first byte of the arena.
	Base() unsafe.Pointer
	// Size returns the total length of the arena in bytes.
	Size() int
}

// Space is the one concrete Provider this package ships: a single,
// contiguous, fixed-size byte slab obtained up front and never resized.
//
// The backing slice is obtained via dirtmake.Bytes rather than make, so
// the arena starts out uninitialised the way memory handed over by an
// external space provider would be: callers must not assume zeroed
// bytes before an allocation ever touches them.
type Space struct {
	buf []byte
}

// New reserves n bytes and returns a Provider over them. It panics if n is
// not positive, since a zero or negative arena can never host even the
// smallest possible block.
func New(n int) *Space {
	if n <= 0 {
		panic(fmt.Sprintf("memspace: size must be positive, got %d", n))
	}
	return &Space{buf: dirtmake.Bytes(n, n)}
}

// Base implements Provider.
func (s *Space) Base() unsafe.Pointer {
	return unsafe.Pointer(&s.buf[0])
}

// Size implements Provider.
func (s *Space) Size() int {
	return len(s.buf)
}
