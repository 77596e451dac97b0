// Package heap implements a segregated free-list dynamic memory allocator
// over a single contiguous, growable byte arena supplied by a Provider.
// Free blocks are threaded into one of seven size-class lists using
// signed 32-bit deltas stored inline in their own payload, rather than
// raw pointers, so the list linkage costs no more than the boundary tags
// it sits beside.
package heap

import (
	"fmt"
	"math"
)

// Addr is a byte offset into the arena, relative to its start. Addr(0)
// is never a valid payload address (the arena's first four bytes are
// always alignment padding, see New), so it doubles as the "no block"
// sentinel used throughout this package.
type Addr int32

const (
	// chunkBytes is the default size of the initial extension and the
	// default cap on how much the arena grows each time an allocation
	// request can't be satisfied from a free list.
	chunkBytes = 1 << 16

	// defaultMaxArenaBytes is DefaultOption's MaxArenaBytes.
	defaultMaxArenaBytes = 20 << 20

	// prefixBytes is the fixed cost of the heap's opening layout:
	// one word of alignment padding, a double-word prologue (header +
	// footer), and the initial epilogue header.
	prefixBytes = 4 * wordSize
)

// Heap is a single arena-backed allocator instance. The zero Heap is not
// usable; construct one with New.
type Heap struct {
	provider Provider
	arena    []byte
	heads    [numClasses]Addr
	opt      Option

	// freeSeen is scratch state populated by Check's block walk and
	// consumed by its free-list walk; it is nil outside of Check.
	freeSeen map[Addr]bool
}

// Option configures a Heap's extension and fit policy. Use DefaultOption
// as a starting point and override only the fields that matter.
type Option struct {
	// ChunkBytes is the size of the initial extension made by New, and
	// the most bytes requested from the Provider each time a fit search
	// fails: a miss requests the smaller of the adjusted request size and
	// ChunkBytes.
	ChunkBytes int32

	// MaxArenaBytes is only checked by New to exceed ChunkBytes; it does
	// not limit the Provider. A SliceProvider's ceiling is the value
	// passed to NewSliceProvider.
	MaxArenaBytes int32

	// ClassBounds are the upper size bounds of the seven segregated
	// classes, strictly increasing; the last entry should be large
	// enough to catch every request (math.MaxInt32 in DefaultOption).
	ClassBounds [numClasses]int32

	// Exhaustive, if true, scans every block in a class before moving
	// to the next class in findFit, instead of only inspecting the
	// head of each list.
	Exhaustive bool
}

// DefaultOption returns the allocator's default configuration: 64KiB
// extension chunks, a MaxArenaBytes of 20MiB, and the seven size classes
// from spec.md §3 (512, 1024, 2048, 4096, 8192, 16384, unbounded).
func DefaultOption() *Option {
	return &Option{
		ChunkBytes:    chunkBytes,
		MaxArenaBytes: defaultMaxArenaBytes,
		ClassBounds:   [numClasses]int32{512, 1024, 2048, 4096, 8192, 16384, math.MaxInt32},
	}
}

func (o *Option) validate() error {
	if o.ChunkBytes <= 0 || o.ChunkBytes%dwordSize != 0 {
		return fmt.Errorf("heap: ChunkBytes must be a positive multiple of %d, got %d", dwordSize, o.ChunkBytes)
	}
	if o.MaxArenaBytes <= o.ChunkBytes {
		return fmt.Errorf("heap: MaxArenaBytes (%d) must exceed ChunkBytes (%d)", o.MaxArenaBytes, o.ChunkBytes)
	}
	prev := int32(0)
	for i, b := range o.ClassBounds {
		if b <= prev {
			return fmt.Errorf("heap: ClassBounds must be strictly increasing, class %d (%d) <= previous (%d)", i, b, prev)
		}
		prev = b
	}
	return nil
}

// New constructs a Heap over p, laying down the prologue and epilogue
// sentinels and performing the initial chunk extension. opt may be nil
// to accept DefaultOption().
func New(p Provider, opt *Option) (*Heap, error) {
	o := DefaultOption()
	if opt != nil {
		o = opt
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	h := &Heap{provider: p, opt: *o}

	old, ok := p.Extend(prefixBytes)
	if !ok {
		return nil, fmt.Errorf("heap: provider exhausted during init")
	}
	h.arena = p.Bytes()

	// old is the alignment padding word; the prologue header follows it.
	// Lay down prologue header+footer (an allocated, double-word
	// bookend block) and the opening epilogue header.
	h.putWord(old+wordSize, pack(dwordSize, true))
	h.putWord(old+2*wordSize, pack(dwordSize, true))
	h.putWord(old+3*wordSize, pack(0, true))

	if h.extendWords(o.ChunkBytes/wordSize) == 0 {
		return nil, fmt.Errorf("heap: provider exhausted during initial chunk")
	}
	return h, nil
}

// adjustedSize converts a requested payload size into the block size
// that must actually be carved from the arena: room for the header and
// footer, rounded up to a double word, with a floor of minBlockSize so
// every free block has room for its predecessor/successor deltas.
func adjustedSize(size int) int32 {
	if size <= 0 {
		return 0
	}
	if size <= dwordSize {
		return minBlockSize
	}
	return int32(dwordSize * ((size + overhead + (dwordSize - 1)) / dwordSize))
}

// Alloc returns the payload address of a newly allocated block, or 0 if
// size is non-positive or the Provider refuses to grow the arena
// (spec.md §4.8). A block found by findFit has room for at least size
// bytes. On a miss the arena grows by the smaller of the adjusted size
// and ChunkBytes; if the free block that results (after coalescing with
// a free block at the end of the heap) is still smaller than the
// adjusted size, that whole block is returned, with room for fewer than
// size bytes.
func (h *Heap) Alloc(size int) Addr {
	asize := adjustedSize(size)
	if asize == 0 {
		return 0
	}

	if p := h.findFit(asize); p != 0 {
		h.place(p, asize)
		return p
	}

	extBytes := asize
	if extBytes > h.opt.ChunkBytes {
		extBytes = h.opt.ChunkBytes
	}
	p := h.extendWords(extBytes / wordSize)
	if p == 0 {
		return 0
	}
	h.place(p, asize)
	return p
}

// Free releases the block at payload p back to its free list, merging
// it with any free neighbors. Freeing 0 is a no-op; freeing an already
// free block, an address that was never returned by Alloc, or a block
// that was freed twice is client misuse and its effects are undefined
// (spec.md §9 Non-goals — this package does not detect double frees).
func (h *Heap) Free(p Addr) {
	if p == 0 {
		return
	}
	size := h.size(p)
	h.setTags(p, size, false)
	h.coalesce(p, size)
}

// Realloc resizes the block at p to hold size bytes, preserving the
// lesser of its old and new payload lengths, and returns the (possibly
// new) payload address. Realloc(0, size) behaves as Alloc(size);
// Realloc(p, 0) behaves as Free(p) and returns 0. If growth fails the
// original block at p is left untouched and 0 is returned.
func (h *Heap) Realloc(p Addr, size int) Addr {
	if p == 0 {
		return h.Alloc(size)
	}
	if size == 0 {
		h.Free(p)
		return 0
	}

	oldPayloadSize := h.size(p) - overhead
	np := h.Alloc(size)
	if np == 0 {
		return 0
	}

	n := oldPayloadSize
	if int32(size) < n {
		n = int32(size)
	}
	copy(h.At(np)[:n], h.At(p)[:n])
	h.Free(p)
	return np
}

// At returns the payload of the block at p as a byte slice, valid until
// the next call to Alloc, Free, or Realloc. At(0) returns nil.
func (h *Heap) At(p Addr) []byte {
	if p == 0 {
		return nil
	}
	payloadLen := h.size(p) - overhead
	return h.arena[p : Addr(p)+Addr(payloadLen)]
}
