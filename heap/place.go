package heap

// place carves an allocation of asize bytes out of the free block at
// payload p (whose current size csize is assumed >= asize and which is
// currently linked into its class list), per spec.md §4.5. If the
// remainder left after carving out asize would be >= minBlockSize, it is
// split off as its own free block and reinserted; otherwise the whole
// block is handed to the caller, internal fragmentation and all. If
// csize is in fact smaller than asize, the whole block is likewise
// marked allocated at its own size.
func (h *Heap) place(p Addr, asize int32) {
	csize := h.size(p)
	h.remove(p)

	if csize-asize >= minBlockSize {
		h.setTags(p, asize, true)
		rem := h.nextBlkp(p, asize)
		h.setTags(rem, csize-asize, false)
		h.insert(rem)
		return
	}

	h.setTags(p, csize, true)
}
