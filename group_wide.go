//go:build amd64 || arm64 || arm64be || ppc64 || ppc64le || riscv64 || wasm

package swisstable

import (
	"encoding/binary"
	"math/bits"
)

// groupWidth is 16 on architectures wide enough to make data-parallel
// 16-byte group loads worthwhile. This backend does not emit literal vector
// instructions (no assembly is generated — see internal/simdgen for where
// that would plug in), but produces the data layout and match-result shape
// (a tightly packed 16-bit lane mask) that a PCMPEQB/PMOVMSKB pair would
// produce, built instead from two 8-lane SWAR halves.
const groupWidth = 16

// group is a window of 16 control bytes, split into two 8-byte halves for
// the underlying SWAR operations.
type group struct {
	lo, hi uint64
}

// loadGroup reads a group-width window of control bytes starting at offset.
// Callers must ensure ctrl has at least groupWidth bytes available from
// offset — the control array's cloned tail guarantees this for any offset
// in [0, capacity).
func loadGroup(ctrlBytes []byte, offset int) group {
	return group{
		lo: binary.LittleEndian.Uint64(ctrlBytes[offset:]),
		hi: binary.LittleEndian.Uint64(ctrlBytes[offset+8:]),
	}
}

// compactMSB8 gathers bit 7 of each of the 8 bytes in word into the low 8
// bits of the result, preserving byte order (byte 0 maps to bit 0).
func compactMSB8(word uint64) uint16 {
	var out uint16
	for i := uint(0); i < 8; i++ {
		if word&(0x80<<(8*i)) != 0 {
			out |= 1 << i
		}
	}
	return out
}

func (g group) packedMask(lo, hi uint64) bitMask {
	return bitMask{
		bits:  uint64(compactMSB8(lo)) | uint64(compactMSB8(hi))<<8,
		width: groupWidth,
		shift: 0,
	}
}

// matchH2 returns the lanes whose control byte equals the Full(h2) tag. Like
// matchByte64, it can also include a Full lane holding h2^1 directly above a
// true match within the same 8-byte half; callers compare keys anyway.
func (g group) matchH2(target h2) bitMask {
	return g.packedMask(matchByte64(g.lo, byte(target)), matchByte64(g.hi, byte(target)))
}

// matchEmpty returns the lanes that are exactly ctrlEmpty.
func (g group) matchEmpty() bitMask {
	return g.packedMask(matchByte64(g.lo, ctrlByte(ctrlEmpty)), matchByte64(g.hi, ctrlByte(ctrlEmpty)))
}

// matchEmptyOrDeleted returns the lanes that are Empty or Deleted (i.e. not
// Full and not Sentinel).
func (g group) matchEmptyOrDeleted() bitMask {
	return g.packedMask(matchEmptyOrDeleted64(g.lo), matchEmptyOrDeleted64(g.hi))
}

// countLeadingEmptyOrDeleted counts the maximal prefix of consecutive lanes
// (starting at lane 0) that are Empty or Deleted.
//
// Because the packed mask is contiguous-bit (shift 0, unlike the scalar
// backend's strided mask), trailing_zeros(mask+1) is a valid way to count a
// leading run of set bits: adding 1 carries through the run of 1s and stops
// at the first 0, leaving trailing_zeros equal to the run length.
func (g group) countLeadingEmptyOrDeleted() int {
	m := g.matchEmptyOrDeleted()
	return bits.TrailingZeros32(uint32(m.bits) + 1)
}
