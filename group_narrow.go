//go:build !(amd64 || arm64 || arm64be || ppc64 || ppc64le || riscv64 || wasm)

package swisstable

import "encoding/binary"

// groupWidth is 8 on architectures where a 16-byte data-parallel window
// isn't a clear win (32-bit targets, exotic backends). A single 64-bit word
// holds the whole group, and every operation is a SWAR bit trick instead of
// a data-parallel compare.
//
// matchH2 on this backend can report false positives: haszero64 (see
// group.go) may also flag a byte equal to h2^1 directly above a true match.
// Since h2^1 has bit 7 clear, such a lane is always Full, never a special
// byte (Empty/Deleted/Sentinel all have bit 7 set), and the key comparison
// in findWithHash rejects it.
const groupWidth = 8

// group is a single 64-bit window of 8 control bytes.
type group struct {
	word uint64
}

func loadGroup(ctrlBytes []byte, offset int) group {
	return group{word: binary.LittleEndian.Uint64(ctrlBytes[offset:])}
}

// matchH2 returns the lanes whose control byte equals the Full(h2) tag, plus
// possibly a Full lane holding h2^1 right above one of them (see above). The
// returned bitMask is strided (shift 3): one bit at position 8*i+7 per lane
// i, matching the scalar backend's width (8) and shift (3).
func (g group) matchH2(target h2) bitMask {
	return bitMask{bits: matchByte64(g.word, byte(target)), width: groupWidth, shift: 3}
}

// matchEmpty returns the lanes that are exactly ctrlEmpty.
func (g group) matchEmpty() bitMask {
	return bitMask{bits: matchByte64(g.word, ctrlByte(ctrlEmpty)), width: groupWidth, shift: 3}
}

// matchEmptyOrDeleted returns the lanes that are Empty or Deleted.
func (g group) matchEmptyOrDeleted() bitMask {
	return bitMask{bits: matchEmptyOrDeleted64(g.word), width: groupWidth, shift: 3}
}

// countLeadingEmptyOrDeleted counts the maximal prefix of consecutive lanes
// (starting at lane 0) that are Empty or Deleted.
//
// The scalar backend's mask is strided (one bit every 8 positions), so the
// SIMD backend's trailing_zeros(mask+1) trick does not directly apply; this
// walks the match word one byte at a time instead, which is cheap at width
// 8 and easy to verify correct.
func (g group) countLeadingEmptyOrDeleted() int {
	matched := matchEmptyOrDeleted64(g.word)
	for i := 0; i < groupWidth; i++ {
		if byte(matched>>(8*i)) == 0 {
			return i
		}
	}
	return groupWidth
}
