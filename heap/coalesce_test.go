package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCoalesceCaseBothAllocated covers spec.md §4.4 case 1: no merge
// happens when both neighbors are allocated.
func TestCoalesceCaseBothAllocated(t *testing.T) {
	h := newTestHeap(t, nil)

	a := h.Alloc(64)
	b := h.Alloc(64)
	c := h.Alloc(64)
	require.NotZero(t, a)
	require.NotZero(t, b)
	require.NotZero(t, c)

	sizeB := h.size(b)
	h.Free(b)
	assert.Equal(t, sizeB, h.size(b))
	assert.False(t, h.isAlloc(b))

	report := h.Check(nil, false)
	assert.True(t, report.OK, report.Violations)
}

// TestCoalesceCaseNextFree covers spec.md §4.4 case 2: freeing a block
// whose right neighbor is already free merges forward.
func TestCoalesceCaseNextFree(t *testing.T) {
	h := newTestHeap(t, nil)

	a := h.Alloc(64)
	b := h.Alloc(64)
	c := h.Alloc(64)
	require.NotZero(t, a)
	require.NotZero(t, b)
	require.NotZero(t, c)

	h.Free(c)
	sizeB, sizeC := h.size(b), h.size(c)
	h.Free(b)

	assert.False(t, h.isAlloc(b))
	assert.Equal(t, sizeB+sizeC, h.size(b))

	report := h.Check(nil, false)
	assert.True(t, report.OK, report.Violations)
}

// TestCoalesceCasePrevFree covers spec.md §4.4 case 3: freeing a block
// whose left neighbor is already free merges backward.
func TestCoalesceCasePrevFree(t *testing.T) {
	h := newTestHeap(t, nil)

	a := h.Alloc(64)
	b := h.Alloc(64)
	c := h.Alloc(64)
	require.NotZero(t, a)
	require.NotZero(t, b)
	require.NotZero(t, c)

	h.Free(a)
	sizeA, sizeB := h.size(a), h.size(b)
	h.Free(b)

	assert.False(t, h.isAlloc(a))
	assert.Equal(t, sizeA+sizeB, h.size(a))

	report := h.Check(nil, false)
	assert.True(t, report.OK, report.Violations)
}

// TestCoalesceCaseBothFree covers spec.md §4.4 case 4: freeing a block
// with both neighbors already free merges into a single block.
func TestCoalesceCaseBothFree(t *testing.T) {
	h := newTestHeap(t, nil)

	a := h.Alloc(64)
	b := h.Alloc(64)
	c := h.Alloc(64)
	require.NotZero(t, a)
	require.NotZero(t, b)
	require.NotZero(t, c)

	h.Free(a)
	h.Free(c)
	sizeA, sizeB, sizeC := h.size(a), h.size(b), h.size(c)
	h.Free(b)

	assert.False(t, h.isAlloc(a))
	assert.Equal(t, sizeA+sizeB+sizeC, h.size(a))

	report := h.Check(nil, false)
	assert.True(t, report.OK, report.Violations)
}
