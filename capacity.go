package swisstable

import "math/bits"

// isValidCapacity reports whether n is (2^m - 1) for some m >= 1, the only
// shape a table's capacity is ever allowed to take: capacity+1 must be a
// power of two so that "hash & capacity" is a valid mod-capacity+1 operation.
func isValidCapacity(n uint64) bool {
	return n != 0 && (n+1)&n == 0
}

// normalizeCapacity rounds n up to the next value of the form 2^m - 1.
func normalizeCapacity(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return 1<<uint(bits.Len64(n)) - 1
}

// capacityToGrowth returns the maximum number of elements a table of the
// given capacity can hold before it must grow, enforcing a max load factor
// of 7/8. capacity is always 2^m-1.
//
// At the smallest non-scalar-friendly capacity (7, with an 8-wide group),
// 7/8 of 7 rounds up to 7 itself, which would allow every slot in the lone
// group to fill — leaving no Empty control byte for probing to terminate
// on. Abseil's tables special-case this exact boundary to 6; this keeps
// that same one-off exception, since it is a correctness requirement, not
// an optimization.
func capacityToGrowth(capacity uint64) uint64 {
	if groupWidth == 8 && capacity == 7 {
		return 6
	}
	return capacity - capacity/8
}

// growthToLowerBoundCapacity returns a capacity (not yet normalized to
// 2^m-1) sufficient to hold growth elements without regrowing, inverting
// capacityToGrowth's "capacity - capacity/8" relation via integer division:
// growth + floor(growth/7). This doesn't need group_width==8's capacity==7
// special case mirrored back: at growth==7 the general formula already
// gives 8, and normalizeCapacity rounds anything it slightly undershoots up
// to the next 2^m-1 anyway, so the result is always a safe (if not always
// snug) lower bound.
func growthToLowerBoundCapacity(growth uint64) uint64 {
	return growth + growth/7
}
