package swisstable

// A ctrl byte is one of four logical states. The numeric values are
// contractual: they let the match/convert primitives in group_wide.go and
// group_narrow.go use sign-bit arithmetic instead of branches.
type ctrl int8

const (
	// ctrlEmpty marks a slot that has never been used, or that was
	// reclaimed by drop-deletes. High bit set, all other bits zero.
	ctrlEmpty ctrl = -128 // 0b1000_0000

	// ctrlDeleted marks a tombstone: the slot was erased, but probing must
	// not stop here, since a later-inserted element may have probed past it.
	ctrlDeleted ctrl = -2 // 0b1111_1110

	// ctrlSentinel terminates the control array. It appears at exactly one
	// position (index == capacity) and never elsewhere.
	ctrlSentinel ctrl = -1 // 0b1111_1111

	// h2Mask extracts the low 7 bits of a hash for a Full(h2) control byte.
	h2Mask = 0x7f
)

// h2 is the low 7 bits of a hash, stored in a Full control byte.
type h2 uint8

// fullCtrl builds a Full(h2) control byte.
func fullCtrl(h h2) ctrl { return ctrl(h & h2Mask) }

// isFull reports whether c is a Full(h2) byte. Full bytes are non-negative
// when the byte is read as a signed int8 (bit 7 clear).
func isFull(c ctrl) bool { return c >= 0 }

// isEmpty reports whether c is exactly ctrlEmpty.
func isEmpty(c ctrl) bool { return c == ctrlEmpty }

// isEmptyOrDeleted reports whether c is Empty or Deleted. Both are < Sentinel
// when compared as signed bytes; Full bytes are never negative, so they never
// satisfy this.
func isEmptyOrDeleted(c ctrl) bool { return c < ctrlSentinel }

// isDeleted reports whether c is exactly ctrlDeleted.
func isDeleted(c ctrl) bool { return c == ctrlDeleted }

// splitHash divides a 64-bit hash into H1 (probe-sequence seed, mixed with
// control-array address entropy) and H2 (the in-group match tag).
//
// addrEntropy is per-table entropy, so that two tables holding the same keys
// do not necessarily probe in the same order (a hash-flooding mitigation,
// not a security property). Table passes its seed field, which defaults to
// the address of the Table struct itself, not of its control array, and
// does not change when the table is resized.
func splitHash(hash uint64, addrEntropy uintptr) (h1 uint64, lo h2) {
	h1 = (hash >> 7) ^ (uint64(addrEntropy) >> 12)
	lo = h2(hash & h2Mask)
	return h1, lo
}

// emptyGroupSingleton is the process-wide, immutable control region that
// every zero-capacity table points at. Its first byte is ctrlSentinel so
// that find() on an empty table terminates on the very first group load
// without any capacity==0 branch. This exact layout (Sentinel in position 0,
// rather than at the tail as a nonzero-capacity table would have it) is
// load-bearing: it is what lets every lookup, and the probe step of every
// insert, run without a capacity==0 special case (only the grow decision in
// rehashAndGrowIfNecessary checks for capacity 0).
var emptyGroupSingleton = [16]byte{
	ctrlByte(ctrlSentinel),
	ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty),
	ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty),
	ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty),
	ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty),
	ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty), ctrlByte(ctrlEmpty),
}

// ctrlByte returns c's encoding as stored in a control array. It is a
// function rather than a conversion so that it also accepts the negative
// ctrl constants, which a constant byte(...) conversion rejects.
func ctrlByte(c ctrl) byte { return byte(c) }

// ctrlName renders a control byte for debug dumps: kSentinel, kEmpty,
// kDeleted, or H2(0xNN).
func ctrlName(c ctrl) string {
	switch c {
	case ctrlSentinel:
		return "kSentinel"
	case ctrlEmpty:
		return "kEmpty"
	case ctrlDeleted:
		return "kDeleted"
	default:
		return h2String(h2(c & h2Mask))
	}
}

func h2String(h h2) string {
	const hexDigits = "0123456789abcdef"
	return "H2(0x" + string([]byte{hexDigits[(h>>4)&0xf], hexDigits[h&0xf]}) + ")"
}
