package heap

// A free block stores two signed 32-bit deltas at the start of its payload:
// predDelta at offset 0, succDelta at offset 4. A delta of 0 means "none".
// predecessor payload = p + predDelta, successor payload = p + succDelta.

func (h *Heap) predDelta(p Addr) int32 { return int32(h.getWord(p)) }
func (h *Heap) succDelta(p Addr) int32 { return int32(h.getWord(p + wordSize)) }

func (h *Heap) setPredDelta(p Addr, d int32) { h.putWord(p, uint32(d)) }
func (h *Heap) setSuccDelta(p Addr, d int32) { h.putWord(p+wordSize, uint32(d)) }

func (h *Heap) predOf(p Addr) Addr {
	d := h.predDelta(p)
	if d == 0 {
		return 0
	}
	return p + Addr(d)
}

func (h *Heap) succOf(p Addr) Addr {
	d := h.succDelta(p)
	if d == 0 {
		return 0
	}
	return p + Addr(d)
}

// insert prepends a free block to the head of its class's list (spec.md
// §4.3). p must already carry a valid header (size readable via h.size).
func (h *Heap) insert(p Addr) {
	c := classOf(h.size(p), &h.opt)
	head := h.heads[c]
	if head == 0 {
		h.setPredDelta(p, 0)
		h.setSuccDelta(p, 0)
		h.heads[c] = p
		return
	}
	h.setSuccDelta(p, int32(head-p))
	h.setPredDelta(p, 0)
	h.setPredDelta(head, int32(p-head))
	h.heads[c] = p
}

// remove unlinks a free block from its class's list (spec.md §4.3). p must
// currently be a member of the list for its class.
func (h *Heap) remove(p Addr) {
	c := classOf(h.size(p), &h.opt)
	if h.heads[c] == p {
		succ := h.succOf(p)
		h.heads[c] = succ
		if succ != 0 {
			h.setPredDelta(succ, 0)
		}
		return
	}
	pred := h.predOf(p)
	succ := h.succOf(p)
	if succ == 0 {
		h.setSuccDelta(pred, 0)
	} else {
		h.setSuccDelta(pred, int32(succ-pred))
		h.setPredDelta(succ, int32(pred-succ))
	}
}
