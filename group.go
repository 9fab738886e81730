package swisstable

// Shared SWAR (SIMD-within-a-register) building blocks used by both group
// backends (group_wide.go, group_narrow.go). Both backends load a window of
// control bytes and need to find which of the 8 bytes in each 64-bit word
// equal a target byte, or have their high bit set. These constants and the
// haszero64/broadcast64 helpers implement that without any per-byte loop.
const (
	lsbs64 uint64 = 0x0101010101010101 // one set bit per byte, bit 0
	msbs64 uint64 = 0x8080808080808080 // one set bit per byte, bit 7
)

// broadcast64 replicates c into every byte of a 64-bit word.
func broadcast64(c byte) uint64 {
	return lsbs64 * uint64(c)
}

// haszero64 returns a per-byte mask with 0x80 set in every byte of x that is
// zero; the result is nonzero exactly when some byte of x is zero. This is
// the classic "find zero byte" bit trick: subtracting 1 from a zero byte
// borrows into the top bit. The borrow also carries into the next byte up,
// so a byte equal to 0x01 directly above a zero byte (or above such a 0x01
// byte) is flagged as well; per-byte results above the lowest zero byte can
// therefore be false positives.
func haszero64(x uint64) uint64 {
	return (x - lsbs64) & ^x & msbs64
}

// matchByte64 returns a per-byte mask with 0x80 set at every byte of word
// that equals target. Through haszero64's borrow, a byte equal to target^1
// directly above a flagged byte can be flagged too.
func matchByte64(word uint64, target byte) uint64 {
	return haszero64(word ^ broadcast64(target))
}

// matchEmptyOrDeleted64 returns a per-byte mask (0x80 where Empty or
// Deleted, 0x00 otherwise) for the bytes in word.
//
// Empty = 0b1000_0000, Deleted = 0b1111_1110, Sentinel = 0b1111_1111, Full =
// 0b0xxx_xxxx. The predicate is "bit 7 set AND bit 0 clear" — that is the
// only bit distinguishing Deleted (bit0==0) from Sentinel (bit0==1), and bit7
// alone distinguishes {Empty,Deleted,Sentinel} from Full. Shifting word left
// 7 moves each byte's bit 0 into that same byte's bit 7 (no cross-byte
// contamination survives the msbs64 mask), so `word & ^(word<<7) & msbs64`
// computes exactly that AND for every byte in parallel.
func matchEmptyOrDeleted64(word uint64) uint64 {
	return word & ^(word << 7) & msbs64
}
