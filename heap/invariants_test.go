package heap

import (
	"testing"

	"github.com/ouassim-boulkamh/memory-allocator/memspace"
)

// newTestHeap builds a Heap over a fresh n-byte arena with a fixed
// secret, so guard values are reproducible across test runs.
func newTestHeap(t *testing.T, n int) *Heap {
	t.Helper()
	return New(memspace.New(n), WithSecret(0xDEADBEEFFEEDFACE))
}

// checkInvariants asserts the free-list and block-layout invariants
// against the current state of h: the free list is strictly ascending
// with no duplicates, no two free blocks are physically adjacent,
// every block's header and trailer guard is intact, and the blocks sum
// to exactly the arena size.
func checkInvariants(t *testing.T, h *Heap) {
	t.Helper()

	seen := make(map[int]bool)
	prev := -1
	for cur := h.head; cur != noBlock; {
		if seen[cur] {
			t.Fatalf("duplicate free block at offset %d", cur)
		}
		seen[cur] = true
		if prev != -1 && cur <= prev {
			t.Fatalf("free list not strictly ascending (%d after %d)", cur, prev)
		}
		prev = cur
		_, next := h.readFree(cur)
		cur = next
	}

	total := 0
	off := 0
	freeCur := h.head
	lastWasFree := false
	for off < h.n {
		if off == freeCur {
			if lastWasFree {
				t.Fatalf("two free blocks physically adjacent at offset %d", off)
			}
			size, next := h.readFree(off)
			total += Hf + size
			freeCur = next
			off += Hf + size
			lastWasFree = true
		} else {
			size, guard := h.readAlloc(off)
			if !h.checkGuard(off, size, guard) {
				t.Fatalf("guard mismatch for allocated block at offset %d", off)
			}
			total += Ha + size
			off += Ha + size
			lastWasFree = false
		}
	}
	if total != h.n {
		t.Fatalf("blocks sum to %d bytes, want %d", total, h.n)
	}
}

// countFree returns the number of free blocks currently in the list and
// the payload size of the last one visited.
func countFree(h *Heap) (count int, lastSize int) {
	for cur := h.head; cur != noBlock; {
		size, next := h.readFree(cur)
		count++
		lastSize = size
		cur = next
	}
	return count, lastSize
}
