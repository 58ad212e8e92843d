package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fragmentedHeap builds a heap with three free blocks of distinct sizes
// at known, ascending offsets: small, medium and large, each isolated by
// an allocated separator on both sides so none of them are physically
// adjacent to one another and none can coalesce.
func fragmentedHeap(t *testing.T) (h *Heap, small, medium, large int) {
	t.Helper()
	h = newTestHeap(t, 4096)

	sep1 := h.Alloc(16)
	a := h.Alloc(16) // becomes the small free block
	sep2 := h.Alloc(16)
	b := h.Alloc(400) // becomes the medium free block
	sep3 := h.Alloc(16)
	d := h.Alloc(1200) // becomes the large free block
	require.NotNil(t, sep1)
	require.NotNil(t, a)
	require.NotNil(t, sep2)
	require.NotNil(t, b)
	require.NotNil(t, sep3)
	require.NotNil(t, d)

	// Consume whatever remains of the arena so no leftover free tail
	// survives alongside the three blocks freed below.
	remaining, _ := h.readFree(h.head)
	sep4 := h.Alloc(remaining - G)
	require.NotNil(t, sep4)
	require.Equal(t, noBlock, h.head)

	h.Free(a)
	h.Free(b)
	h.Free(d)

	n, _ := countFree(h)
	require.Equal(t, 3, n)

	small = h.offsetFromPayload(a)
	medium = h.offsetFromPayload(b)
	large = h.offsetFromPayload(d)
	return h, small, medium, large
}

func TestFirstFitPicksLowestAddress(t *testing.T) {
	h, small, _, _ := fragmentedHeap(t)
	got := FirstFit(h, h.head, 8)
	assert.Equal(t, small, got)
}

func TestBestFitPicksSmallestSufficientBlock(t *testing.T) {
	h, _, medium, _ := fragmentedHeap(t)
	// request bigger than the small block but well within medium and large
	got := BestFit(h, h.head, 300)
	assert.Equal(t, medium, got)
}

func TestWorstFitPicksLargestBlock(t *testing.T) {
	h, _, _, large := fragmentedHeap(t)
	got := WorstFit(h, h.head, 8)
	assert.Equal(t, large, got)
}

func TestPolicyReturnsNoBlockWhenNothingFits(t *testing.T) {
	h, _, _, _ := fragmentedHeap(t)
	for _, p := range []Policy{FirstFit, BestFit, WorstFit} {
		assert.Equal(t, noBlock, p(h, h.head, 1<<30))
	}
}

func TestHeapHonoursConfiguredPolicy(t *testing.T) {
	h, _, medium, _ := fragmentedHeap(t)
	h.SetPolicy(BestFit)

	p := h.Alloc(300 - G)
	require.NotNil(t, p)
	assert.Equal(t, medium, h.offsetFromPayload(p))
}
