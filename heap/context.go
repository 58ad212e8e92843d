package heap

import (
	"fmt"
	"unsafe"

	"github.com/ouassim-boulkamh/memory-allocator/memspace"
)

// Heap is an allocator context: an arena, a free list, a placement
// policy and a guard secret, all gathered into one value rather than
// scattered across package globals.
//
// Heap is not safe for concurrent use. This is deliberate, not an
// oversight: every operation mutates the free list and block headers
// without synchronisation, and adding a mutex here would misrepresent
// an allocator whose entire design assumes a single caller.
type Heap struct {
	base unsafe.Pointer
	n    int

	minAddr uintptr
	maxAddr uintptr

	secret uint64
	policy Policy

	head int // offset of the first free block, or noBlock
}

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithSecret overrides the guard secret. Defaults to DefaultSecret.
func WithSecret(secret uint64) Option {
	return func(h *Heap) { h.secret = secret }
}

// WithPolicy overrides the initial placement policy. Defaults to
// FirstFit.
func WithPolicy(p Policy) Option {
	return func(h *Heap) { h.policy = p }
}

// New installs a single free block spanning the whole arena supplied by
// p and returns a ready-to-use Heap. It panics if the arena is too
// small to hold even one free block's header.
func New(p memspace.Provider, opts ...Option) *Heap {
	base := p.Base()
	n := p.Size()
	if n < Hf {
		panic(fmt.Sprintf("heap: arena of %d bytes too small for a free block header (%d bytes)", n, Hf))
	}

	h := &Heap{
		base:   base,
		n:      n,
		secret: DefaultSecret,
		policy: FirstFit,
	}
	h.minAddr = uintptr(base) + uintptr(Hmin())
	h.maxAddr = uintptr(base) + uintptr(n) - 1

	for _, opt := range opts {
		opt(h)
	}

	h.head = 0
	h.writeFree(0, n-Hf, noBlock)
	return h
}

// SetPolicy installs a new placement policy.
func (h *Heap) SetPolicy(p Policy) { h.policy = p }

// inArena reports whether the payload address z falls within the
// bounds of a valid payload pointer for this heap.
func (h *Heap) inArena(z unsafe.Pointer) bool {
	if z == nil {
		return false
	}
	addr := uintptr(z)
	return addr >= h.minAddr && addr < h.maxAddr
}

// --- package-level default-context façade, used by libcshim ---

var def *Heap

// Init installs the package-level default Heap. It must be called
// exactly once, before any of Alloc/Free/Resize/Size/Show/SetPolicy.
func Init(p memspace.Provider, opts ...Option) {
	def = New(p, opts...)
}

// Default returns the package-level default Heap, or nil if Init has
// not been called.
func Default() *Heap { return def }

// Alloc forwards to the default Heap's Alloc.
func Alloc(size int) unsafe.Pointer { return def.Alloc(size) }

// Free forwards to the default Heap's Free.
func Free(p unsafe.Pointer) { def.Free(p) }

// Resize forwards to the default Heap's Resize.
func Resize(p unsafe.Pointer, size int) unsafe.Pointer { return def.Resize(p, size) }

// Size forwards to the default Heap's Size.
func Size(p unsafe.Pointer) int { return def.Size(p) }

// Show forwards to the default Heap's Show.
func Show(visit func(payload unsafe.Pointer, userSize int, isFree bool)) { def.Show(visit) }

// SetPolicy forwards to the default Heap's SetPolicy.
func SetPolicy(p Policy) { def.SetPolicy(p) }
