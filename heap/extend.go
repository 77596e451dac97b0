package heap

// extendWords grows the arena by words machine words (rounded up to an
// even count to preserve double-word alignment) via the provider, and
// folds the new space into a single free block. It reuses the old
// epilogue's header slot as the new block's header, exactly as
// spec.md §4.7 describes, then coalesces the new block with whatever
// free block ends the heap so runs of small extensions don't fragment.
// It returns the payload address of the resulting free block, or 0 if
// the provider could not supply the space.
func (h *Heap) extendWords(words int32) Addr {
	if words <= 0 {
		return 0
	}
	if words%2 != 0 {
		words++
	}
	nBytes := words * wordSize

	old, ok := h.provider.Extend(nBytes)
	if !ok {
		return 0
	}
	h.arena = h.provider.Bytes()

	// old is the payload address of the new block: the byte range
	// [old-wordSize, old) was the epilogue header, now repurposed as
	// this block's header.
	h.putWord(old-wordSize, pack(nBytes, false))
	h.putWord(h.ftrp(old, nBytes), pack(nBytes, false))
	h.putWord(old+Addr(nBytes)-wordSize, pack(0, true)) // new epilogue

	return h.coalesce(old, nBytes)
}
