package set

import (
	"math/bits"

	"tlog.app/go/tlog/tlwire"
)

type (
	// Bitmap is a growable set of non-negative ints.
	Bitmap struct {
		b  []uint64
		b0 [2]uint64
	}
)

func MakeBitmap(n int) Bitmap {
	s := Bitmap{}
	s.b = s.b0[:]

	if n = (n + 63) / 64; n > len(s.b) {
		s.b = make([]uint64, n)
	}

	return s
}

func (s *Bitmap) Set(i int) {
	w, j := i/64, i%64

	for w >= len(s.b) {
		s.b = append(s.b, 0)
	}

	s.b[w] |= 1 << j
}

func (s *Bitmap) IsSet(i int) bool {
	w, j := i/64, i%64

	if w >= len(s.b) {
		return false
	}

	return s.b[w]&(1<<j) != 0
}

// Diff returns elements of s missing in x.
func (s *Bitmap) Diff(x *Bitmap) Bitmap {
	r := MakeBitmap(len(s.b) * 64)

	for i, w := range s.b {
		if i < len(x.b) {
			w &^= x.b[i]
		}

		r.b[i] = w
	}

	return r
}

func (s *Bitmap) Size() (n int) {
	for _, w := range s.b {
		n += bits.OnesCount64(w)
	}

	return n
}

// First returns the smallest element or -1 for an empty set.
func (s *Bitmap) First() int {
	for i, w := range s.b {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}

	return -1
}

func (s *Bitmap) Range(f func(i int) bool) {
	for i, w := range s.b {
		for w != 0 {
			j := bits.TrailingZeros64(w)
			w &^= 1 << j

			if !f(i*64 + j) {
				return
			}
		}
	}
}

func (s Bitmap) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	if s.b == nil {
		return e.AppendNil(b)
	}

	b = e.AppendTag(b, tlwire.Array, -1)

	s.Range(func(i int) bool {
		b = e.AppendInt(b, i)

		return true
	})

	return e.AppendBreak(b)
}
