package heap

import (
	"fmt"
	"io"
	"strings"
)

// CheckReport is the result of a consistency walk of a Heap (spec.md §4.9).
type CheckReport struct {
	// OK is true iff Violations is empty.
	OK bool

	// Violations describes every invariant breach found, one entry per
	// violation, in the order they were discovered.
	Violations []string
}

func (r *CheckReport) fail(format string, args ...interface{}) {
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

// Check walks the heap's blocks from prologue to epilogue and each
// class's free list, verifying the invariants of spec.md §4.9 (P1-P5
// and the prologue-to-epilogue walk of P9): alignment, header/footer
// agreement, no two adjacent free blocks, free-list membership matching
// the allocated bit and size class, and list-linkage symmetry. It does
// not check that live allocations are disjoint (P6) or that block sizes
// sum to the arena size. If verbose is true, a line is written to w for
// every block visited and every free-list entry visited.
func (h *Heap) Check(w io.Writer, verbose bool) *CheckReport {
	report := &CheckReport{}

	var sb strings.Builder
	h.walkBlocks(report, &sb, verbose)
	h.walkFreeLists(report, &sb, verbose)
	h.freeSeen = nil

	if verbose && w != nil {
		io.WriteString(w, sb.String())
	}

	report.OK = len(report.Violations) == 0
	return report
}

func (h *Heap) walkBlocks(report *CheckReport, sb *strings.Builder, verbose bool) {
	seenFree := map[Addr]bool{}
	prevWasFree := false

	// The first real block's header sits right after the prologue
	// footer, reusing what was the opening epilogue slot (see
	// extendWords), so its payload is exactly prefixBytes in.
	p := Addr(prefixBytes)
	for {
		size := h.size(p)
		alloc := h.isAlloc(p)

		if size == 0 && alloc {
			// epilogue reached.
			break
		}

		if verbose {
			fmt.Fprintf(sb, "block %d: size=%d alloc=%v\n", p, size, alloc)
		}

		if int32(p)%dwordSize != 0 {
			report.fail("block at %d is not double-word aligned", p)
		}
		hw := h.getWord(h.hdrp(p))
		fw := h.getWord(h.ftrp(p, size))
		if hw != fw {
			report.fail("block at %d: header (%#x) and footer (%#x) disagree", p, hw, fw)
		}
		if size < minBlockSize {
			report.fail("block at %d: size %d below minimum %d", p, size, minBlockSize)
		}

		if !alloc {
			if prevWasFree {
				report.fail("block at %d: adjacent to a preceding free block, should have coalesced", p)
			}
			seenFree[p] = true
		}
		prevWasFree = !alloc

		p = h.nextBlkp(p, size)
	}

	h.freeSeen = seenFree
}

func (h *Heap) walkFreeLists(report *CheckReport, sb *strings.Builder, verbose bool) {
	listed := map[Addr]bool{}

	for c := 0; c < numClasses; c++ {
		var prev Addr
		for b := h.heads[c]; b != 0; b = h.succOf(b) {
			if verbose {
				fmt.Fprintf(sb, "class %d: block %d size=%d\n", c, b, h.size(b))
			}

			if h.isAlloc(b) {
				report.fail("class %d: block %d is in a free list but marked allocated", c, b)
			}
			if got := classOf(h.size(b), &h.opt); got != c {
				report.fail("class %d: block %d (size %d) belongs in class %d", c, b, h.size(b), got)
			}
			if h.predOf(b) != prev {
				report.fail("class %d: block %d predecessor link does not point back to %d", c, b, prev)
			}
			if !h.freeSeen[b] {
				report.fail("class %d: block %d is linked but was not found during the block walk", c, b)
			}
			listed[b] = true
			prev = b
		}
	}

	for b := range h.freeSeen {
		if !listed[b] {
			report.fail("block %d is free but not linked into any class list", b)
		}
	}
}
