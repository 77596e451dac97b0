package heap

import (
	"errors"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Provider is the sbrk-like memory source a Heap extends itself from
// (spec.md §6). Extend must return a contiguous range immediately past
// the end of whatever it previously handed out; Bytes must return a
// slice covering the whole arena from byte 0, growing (and possibly
// reallocating) as Extend succeeds.
type Provider interface {
	// Extend grows the arena by nBytes and returns the payload address
	// of the start of the new space. ok is false if the provider cannot
	// satisfy the request (e.g. a configured ceiling would be exceeded).
	Extend(nBytes int32) (old Addr, ok bool)

	// Bytes returns the full backing slice for the arena, valid until
	// the next call to Extend.
	Bytes() []byte

	// Lo and Hi bound the currently provided range as arena-relative
	// addresses; Hi grows on every successful Extend.
	Lo() Addr
	Hi() Addr
}

// SliceProvider is the reference Provider: a single growable []byte,
// doubling its backing capacity on growth and refusing to extend past
// the ceiling given to NewSliceProvider (spec.md §6).
type SliceProvider struct {
	buf []byte
	max int32
}

// NewSliceProvider returns a SliceProvider that will never let the
// arena grow past maxArenaBytes.
func NewSliceProvider(maxArenaBytes int32) (*SliceProvider, error) {
	if maxArenaBytes <= 0 {
		return nil, errors.New("heap: maxArenaBytes must be positive")
	}
	return &SliceProvider{max: maxArenaBytes}, nil
}

func (s *SliceProvider) Extend(nBytes int32) (Addr, bool) {
	if nBytes <= 0 {
		return 0, false
	}
	old := int32(len(s.buf))
	need := old + nBytes
	if need > s.max {
		return 0, false
	}
	if need <= int32(cap(s.buf)) {
		s.buf = s.buf[:need]
		return Addr(old), true
	}

	ncap := int32(1)
	for ncap < need {
		ncap <<= 1
	}
	if ncap > s.max {
		ncap = s.max
	}
	nbuf := dirtmake.Bytes(int(need), int(ncap))
	copy(nbuf, s.buf)
	s.buf = nbuf
	return Addr(old), true
}

func (s *SliceProvider) Bytes() []byte { return s.buf }
func (s *SliceProvider) Lo() Addr      { return 0 }
func (s *SliceProvider) Hi() Addr      { return Addr(len(s.buf)) }
