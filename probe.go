package swisstable

// probeSeq walks the triangular probing sequence over a table's groups:
// the first offset is the slot index h1 mod (capacity+1), and each
// subsequent offset jumps by an increasing multiple of groupWidth. The
// sequence depends only on that first offset, so two keys that start at the
// same offset follow the same sequence. mask is capacity (always 2^n - 1),
// so "mod capacity+1" is a plain bitwise AND.
type probeSeq struct {
	mask   uint64
	offset uint64
	index  uint64
}

// newProbeSeq starts a probe sequence at slot offset (hash & mask).
func newProbeSeq(hash uint64, mask uint64) probeSeq {
	return probeSeq{
		mask:   mask,
		offset: hash & mask,
		index:  0,
	}
}

// next advances to the next offset in the sequence: index grows by
// groupWidth every step (0, groupWidth, 2*groupWidth, ...), and offset
// accumulates index, wrapping via the mask. Because capacity+1 is always a
// power of two, this visits every group exactly once before repeating.
func (p *probeSeq) next() {
	p.index += groupWidth
	p.offset = (p.offset + p.index) & p.mask
}

// offsetAt converts a group-relative lane into a real slot index, wrapping
// via the mask. The cloned tail lets a group load read groupWidth bytes
// starting at offset even near the end of ctrl, but the slot index backing
// each lane still has to wrap back to the front of the table.
func (p probeSeq) offsetAt(lane uint32) uint64 {
	return (p.offset + uint64(lane)) & p.mask
}
