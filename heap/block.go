package heap

import "unsafe"

// word and alignment constants, preserved bit-exact from the reference
// allocator this package implements.
const (
	wordSize     = 4  // a word is 4 bytes
	dwordSize    = 8  // a double word is 8 bytes
	overhead     = dwordSize // header + footer
	minBlockSize = 16 // header(4) + footer(4) + 8 bytes of payload/link area
	allocBit     = uint32(1)
)

// pack encodes a block size and its allocated bit into a single header or
// footer word. size is always a multiple of 8, so the low 3 bits are free
// for flags; only bit 0 (allocated) is used.
func pack(size int32, allocated bool) uint32 {
	v := uint32(size)
	if allocated {
		v |= allocBit
	}
	return v
}

func sizeOf(w uint32) int32  { return int32(w &^ 0x7) }
func allocOf(w uint32) bool  { return w&allocBit != 0 }

// getWord/putWord read and write a header/footer word at an arena-relative
// byte offset, mirroring unsafex/malloc's unsafe.Pointer-over-[]byte style.
func (h *Heap) getWord(a Addr) uint32 {
	return *(*uint32)(unsafe.Pointer(&h.arena[a]))
}

func (h *Heap) putWord(a Addr, v uint32) {
	*(*uint32)(unsafe.Pointer(&h.arena[a])) = v
}

// hdrp/ftrp/nextBlkp/prevBlkp are the block-addressing primitives from
// spec.md §4.1: given a payload address, locate the surrounding structure.
func (h *Heap) hdrp(p Addr) Addr { return p - wordSize }

func (h *Heap) ftrp(p Addr, size int32) Addr { return p + Addr(size) - dwordSize }

func (h *Heap) nextBlkp(p Addr, size int32) Addr { return p + Addr(size) }

func (h *Heap) prevBlkp(p Addr) Addr {
	prevSize := sizeOf(h.getWord(p - dwordSize))
	return p - Addr(prevSize)
}

func (h *Heap) size(p Addr) int32   { return sizeOf(h.getWord(h.hdrp(p))) }
func (h *Heap) isAlloc(p Addr) bool { return allocOf(h.getWord(h.hdrp(p))) }

// setTags writes the same (size, allocated) word to both the header and
// footer of the block at payload p, preserving invariant P2.
func (h *Heap) setTags(p Addr, size int32, allocated bool) {
	w := pack(size, allocated)
	h.putWord(h.hdrp(p), w)
	h.putWord(h.ftrp(p, size), w)
}
