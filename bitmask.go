package swisstable

import "math/bits"

// bitMask carries a packed match result out of a group's compare operations.
// width is the number of lanes the owning group backend represents; shift is
// log2 of how many raw bits separate adjacent lanes (0 for the 16-lane
// backend's tightly packed mask, 3 for the 8-lane scalar backend's
// one-bit-per-byte mask). lowestBitSet/next divide raw bit positions by
// 2^shift to report lane indices.
type bitMask struct {
	bits  uint64
	width uint
	shift uint
}

// lowestBitSet returns the lane index of the lowest set bit, or width if the
// mask is empty.
func (m bitMask) lowestBitSet() uint32 {
	if m.bits == 0 {
		return uint32(m.width)
	}
	return uint32(bits.TrailingZeros64(m.bits) >> m.shift)
}

// highestBitSet returns the lane index of the highest set bit, or width if
// the mask is empty.
func (m bitMask) highestBitSet() uint32 {
	if m.bits == 0 {
		return uint32(m.width)
	}
	return uint32((63 - bits.LeadingZeros64(m.bits)) >> m.shift)
}

// trailingZeros is lowestBitSet under another name.
func (m bitMask) trailingZeros() uint32 { return m.lowestBitSet() }

// leadingZeros subtracts the mask word's non-significant high bits (those
// above width*2^shift) before counting, then converts to lane units.
func (m bitMask) leadingZeros() uint32 {
	significantBits := m.width << m.shift
	extra := uint(64) - significantBits
	if m.bits == 0 {
		return uint32(m.width)
	}
	lz := uint(bits.LeadingZeros64(m.bits))
	if lz < extra {
		// Shouldn't happen for well-formed masks, but stay defined.
		return 0
	}
	return uint32((lz - extra) >> m.shift)
}

// next pops and returns the lowest set lane, advancing the mask by clearing
// that bit. It reports false once the mask is exhausted. Iteration order is
// ascending by lane index.
func (m *bitMask) next(out *uint32) bool {
	if m.bits == 0 {
		return false
	}
	lane := uint32(bits.TrailingZeros64(m.bits) >> m.shift)
	*out = lane
	lowest := m.bits & (-m.bits)
	m.bits &^= lowest
	return true
}

// isEmpty reports whether no lanes matched.
func (m bitMask) isEmpty() bool { return m.bits == 0 }
