package heap

// findFit searches the segregated lists for a free block able to hold
// asize bytes, starting at asize's own class and walking upward through
// larger classes (spec.md §4.6). Within a class, the default policy
// accepts the head of the first non-empty list fit to test (first-fit
// on the class, not on the heap); Option.Exhaustive switches to a full
// scan of every block in the class before giving up on it.
func (h *Heap) findFit(asize int32) Addr {
	c0 := classOf(asize, &h.opt)
	for c := c0; c < numClasses; c++ {
		for b := h.heads[c]; b != 0; b = h.succOf(b) {
			if h.size(b) >= asize {
				return b
			}
			if !h.opt.Exhaustive {
				break
			}
		}
	}
	return 0
}
