// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitm defines a bitmap type useful for slot management
// (e.g., free lists of arena-allocated nodes).
package bitm

import (
	"math/bits"
	"unsafe"
)

// Uint represents the granularity of a bitmap.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Bitm is a growable bitmap with custom granularity.
// The zero value is an empty bitmap.
type Bitm[T Uint] struct {
	m   []T
	rem int
}

// nbit returns the number of bits in T.
func (*Bitm[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// Len returns the number of bits in the map.
func (m *Bitm[_]) Len() int { return len(m.m) * m.nbit() }

// Rem returns the number of unset bits in the map.
func (m *Bitm[_]) Rem() int { return m.rem }

// Grow appends nplus unset Uints to the map.
// It returns the value of m.Len prior to growing, which is
// the index of the first new bit.
func (m *Bitm[T]) Grow(nplus int) (index int) {
	index = m.Len()
	if nplus > 0 {
		m.rem += nplus * m.nbit()
		m.m = append(m.m, make([]T, nplus)...)
	}
	return
}

func (m *Bitm[T]) loc(index int) (int, T) {
	n := m.nbit()
	return index / n, T(1) << (index % n)
}

// Set sets the given bit.
func (m *Bitm[T]) Set(index int) {
	i, b := m.loc(index)
	if m.m[i]&b == 0 {
		m.m[i] |= b
		m.rem--
	}
}

// Unset unsets the given bit.
func (m *Bitm[T]) Unset(index int) {
	i, b := m.loc(index)
	if m.m[i]&b != 0 {
		m.m[i] &^= b
		m.rem++
	}
}

// IsSet checks whether the given bit is set.
func (m *Bitm[T]) IsSet(index int) bool {
	i, b := m.loc(index)
	return m.m[i]&b != 0
}

// Search locates the lowest unset bit.
// It fails only when m.Rem() == 0.
func (m *Bitm[T]) Search() (index int, ok bool) {
	if m.rem == 0 {
		return
	}
	for i, x := range m.m {
		if x == ^T(0) {
			continue
		}
		b := bits.TrailingZeros64(uint64(^x))
		return i*m.nbit() + b, true
	}
	return
}
