package heap

import (
	"io"
	"sync"
)

// SafeHeap wraps a Heap with a mutex so it can be shared across
// goroutines (spec.md §5, §9). The bare Heap is not safe for concurrent
// use on its own; SafeHeap is the opt-in layer for callers that need it.
type SafeHeap struct {
	mu sync.Mutex
	h  *Heap
}

// NewSafe constructs a Heap the same way New does, and wraps it for
// concurrent use.
func NewSafe(p Provider, opt *Option) (*SafeHeap, error) {
	h, err := New(p, opt)
	if err != nil {
		return nil, err
	}
	return &SafeHeap{h: h}, nil
}

func (s *SafeHeap) Alloc(size int) Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Alloc(size)
}

func (s *SafeHeap) Free(p Addr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Free(p)
}

func (s *SafeHeap) Realloc(p Addr, size int) Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Realloc(p, size)
}

// At returns a copy of the block's payload rather than a slice aliasing
// the arena directly: under SafeHeap, the arena can be grown (and
// reallocated) by another goroutine's Alloc as soon as the lock is
// released, which would invalidate a slice taken from the old backing
// array.
func (s *SafeHeap) At(p Addr) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.h.At(p)
	if src == nil {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}

func (s *SafeHeap) Check(w io.Writer, verbose bool) *CheckReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Check(w, verbose)
}
