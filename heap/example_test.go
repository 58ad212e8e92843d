package heap_test

import (
	"fmt"

	"github.com/ouassim-boulkamh/memory-allocator/heap"
	"github.com/ouassim-boulkamh/memory-allocator/memspace"
)

func Example() {
	h := heap.New(memspace.New(1024))

	p := h.Alloc(64)
	fmt.Println("size:", h.Size(p))

	p = h.Resize(p, 128)
	fmt.Println("size after grow:", h.Size(p))

	h.Free(p)
	fmt.Println("size after free:", h.Size(p))

	// Output:
	// size: 64
	// size after grow: 128
	// size after free: 0
}
