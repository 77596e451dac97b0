package heap

// coalesce merges the free block at payload p (of size) with any free
// neighbors, via the boundary tags to its immediate left and right, and
// inserts the (possibly merged) result into its class list. It implements
// the four cases of spec.md §4.4 and returns the payload of the resulting
// free block.
func (h *Heap) coalesce(p Addr, size int32) Addr {
	prevAlloc := allocOf(h.getWord(p - dwordSize))
	nextAlloc := allocOf(h.getWord(p + Addr(size) - wordSize))

	switch {
	case prevAlloc && nextAlloc:
		h.setTags(p, size, false)
		h.insert(p)
		return p

	case prevAlloc && !nextAlloc:
		next := h.nextBlkp(p, size)
		size += h.size(next)
		h.remove(next)
		h.setTags(p, size, false)
		h.insert(p)
		return p

	case !prevAlloc && nextAlloc:
		prev := h.prevBlkp(p)
		size += h.size(prev)
		h.remove(prev)
		h.setTags(prev, size, false)
		h.insert(prev)
		return prev

	default: // both neighbors free
		prev := h.prevBlkp(p)
		next := h.nextBlkp(p, size)
		size += h.size(prev) + h.size(next)
		h.remove(prev)
		h.remove(next)
		h.setTags(prev, size, false)
		h.insert(prev)
		return prev
	}
}
