package swisstable

import "unsafe"

// Table is the generic open-addressed hash table engine: control bytes
// drive group-parallel matching and probing, while the slot type S and its
// policy decide whether elements live inline (flatPolicy) or behind a
// pointer (nodePolicy). Map[K,V] and NodeMap[K,V] are thin instantiations
// of Table with those two policies; most callers should use one of those
// rather than Table directly.
type Table[K comparable, V any, S any] struct {
	ctrl       []byte
	slots      []S
	capacity   uint64 // always 2^n - 1, or 0 for an unallocated table
	size       uint64 // live element count
	growthLeft uint64 // inserts into genuinely Empty slots left before a grow

	policy slotPolicy[K, V, S]
	hasher Hasher[K]
	seed   uint64 // mixed into H1; defaults to the table's own address
}

// NewTable constructs an empty table with the given slot policy and hash
// function, reserving capacity for at least capacityHint elements.
func NewTable[K comparable, V any, S any](capacityHint int, policy slotPolicy[K, V, S], hasher Hasher[K]) *Table[K, V, S] {
	t := &Table[K, V, S]{
		ctrl:   emptyGroupSingleton[:],
		policy: policy,
		hasher: hasher,
	}
	t.seed = uint64(uintptr(unsafe.Pointer(t)))
	if capacityHint > 0 {
		t.resize(growthToLowerBoundCapacity(uint64(capacityHint)))
	}
	return t
}

func (t *Table[K, V, S]) Len() int      { return int(t.size) }
func (t *Table[K, V, S]) Cap() int      { return int(t.capacity) }
func (t *Table[K, V, S]) IsEmpty() bool { return t.size == 0 }

func (t *Table[K, V, S]) hashOf(k K) (uint64, h2) {
	return splitHash(t.hasher.Hash(k), uintptr(t.seed))
}

// Get looks up k and reports whether it was present.
func (t *Table[K, V, S]) Get(k K) (V, bool) {
	h1, h2v := t.hashOf(k)
	idx, ok := t.findWithHash(k, h1, h2v)
	if !ok {
		var zero V
		return zero, false
	}
	return *t.policy.valueOf(&t.slots[idx]), true
}

// find locates k, recomputing its hash.
func (t *Table[K, V, S]) find(k K) (uint64, bool) {
	h1, h2v := t.hashOf(k)
	return t.findWithHash(k, h1, h2v)
}

// findWithHash is find with an already-split hash, so insert paths that
// already computed h1/h2 don't hash twice.
func (t *Table[K, V, S]) findWithHash(k K, h1 uint64, h2v h2) (uint64, bool) {
	seq := newProbeSeq(h1, t.capacity)
	for {
		g := loadGroup(t.ctrl, int(seq.offset))
		m := g.matchH2(h2v)
		var lane uint32
		for m.next(&lane) {
			idx := seq.offsetAt(lane)
			if *t.policy.keyOf(&t.slots[idx]) == k {
				return idx, true
			}
		}
		if !g.matchEmpty().isEmpty() {
			return 0, false
		}
		seq.next()
	}
}

// findFirstNonFull returns the first Empty or Deleted slot reachable from
// h1's probe sequence. Callers must already know such a slot exists
// (growthLeft > 0, or a table freshly sized to hold what's being
// reinserted) — otherwise this loops forever, the same way the algorithm it
// implements does.
func (t *Table[K, V, S]) findFirstNonFull(h1 uint64) uint64 {
	seq := newProbeSeq(h1, t.capacity)
	for {
		g := loadGroup(t.ctrl, int(seq.offset))
		m := g.matchEmptyOrDeleted()
		var lane uint32
		if m.next(&lane) {
			return seq.offsetAt(lane)
		}
		seq.next()
	}
}

// setCtrl writes c at index i, mirroring it into the cloned tail window
// when i falls in the region group loads near the end of the table depend
// on (i < groupWidth-1). The sentinel byte at index capacity is fixed at
// construction and never passed here.
func (t *Table[K, V, S]) setCtrl(i uint64, c ctrl) {
	t.ctrl[i] = byte(c)
	if i < uint64(groupWidth-1) {
		t.ctrl[t.capacity+1+i] = byte(c)
	}
}

// prepareInsertAt finds (or makes room for) a slot to hold a new element
// hashing to (h1, h2v), growing the table first if no budget remains for
// inserting into a genuinely Empty slot. It returns the slot index with its
// control byte already set to Full(h2v); the caller still must write the
// slot's key/value.
//
// The grow check is keyed on "not Deleted" rather than "is Empty": reusing a
// Deleted tombstone never needs growth budget, so skipping the grow there is
// correct; everything else reachable here (a genuine Empty, or — for a
// zero-capacity table — the fixed Sentinel byte at the shared empty-group
// singleton's position 0) must force a grow before the target is trusted, a
// capacity-0 table never has real slots to write into otherwise.
func (t *Table[K, V, S]) prepareInsertAt(h1 uint64, h2v h2) uint64 {
	target := t.findFirstNonFull(h1)
	if t.growthLeft == 0 && !isDeleted(ctrl(int8(t.ctrl[target]))) {
		t.rehashAndGrowIfNecessary()
		target = t.findFirstNonFull(h1)
	}
	t.size++
	if isEmpty(ctrl(int8(t.ctrl[target]))) {
		t.growthLeft--
	}
	t.setCtrl(target, fullCtrl(h2v))
	return target
}

// Insert sets k's value to v, inserting a new element if k is absent.
// Reports whether k already existed.
func (t *Table[K, V, S]) Insert(k K, v V) (existed bool) {
	h1, h2v := t.hashOf(k)
	if idx, ok := t.findWithHash(k, h1, h2v); ok {
		*t.policy.valueOf(&t.slots[idx]) = v
		return true
	}
	target := t.prepareInsertAt(h1, h2v)
	t.policy.init(&t.slots[target], k, v)
	return false
}

// ValuePtr returns a pointer to k's live value. For a node-policy table
// (NodeMap) this pointer survives growth and drop-deletes, since relocating
// a node only copies the pointer that refers to it; for a flat-policy table
// (Map) it is invalidated by the table's next mutation and must not be
// retained.
func (t *Table[K, V, S]) ValuePtr(k K) (*V, bool) {
	idx, ok := t.find(k)
	if !ok {
		return nil, false
	}
	return t.policy.valueOf(&t.slots[idx]), true
}

// Erase removes k, reporting whether it was present.
func (t *Table[K, V, S]) Erase(k K) bool {
	idx, ok := t.find(k)
	if !ok {
		return false
	}
	t.eraseAt(idx)
	return true
}

func (t *Table[K, V, S]) eraseAt(idx uint64) {
	t.policy.clear(&t.slots[idx])
	t.size--
	if t.wasNeverFull(idx) {
		t.setCtrl(idx, ctrlEmpty)
		t.growthLeft++
		return
	}
	t.setCtrl(idx, ctrlDeleted)
}

// wasNeverFull reports whether idx sits close enough to an Empty slot on
// both sides that no probe sequence could ever have run past it — meaning
// it's safe to mark idx Empty outright (returning its slot to the growth
// budget) instead of leaving a Deleted tombstone behind.
func (t *Table[K, V, S]) wasNeverFull(idx uint64) bool {
	idxBefore := (idx - groupWidth) & t.capacity
	emptyBefore := loadGroup(t.ctrl, int(idxBefore)).matchEmpty()
	emptyAfter := loadGroup(t.ctrl, int(idx)).matchEmpty()
	if emptyBefore.isEmpty() || emptyAfter.isEmpty() {
		return false
	}
	return emptyAfter.trailingZeros()+emptyBefore.leadingZeros() < groupWidth
}

// insertNoGrow places an already-hashed element into a table that is known
// to have room, without running the grow/rehash check. Used only while
// rebuilding a table (resize, drop-deletes) where every destination slot is
// genuinely Empty and growthLeft was just set from scratch.
func (t *Table[K, V, S]) insertNoGrow(h1 uint64, h2v h2, slot S) {
	target := t.findFirstNonFull(h1)
	t.setCtrl(target, fullCtrl(h2v))
	t.policy.transfer(&t.slots[target], &slot)
	t.growthLeft--
}

// initCapacity allocates fresh ctrl/slots storage for exactly capacity
// (which must already be of the form 2^n-1, or 0), discarding whatever the
// table held before. growthLeft is reset to the new capacity's full budget;
// callers that are carrying elements across must account for that via
// insertNoGrow.
func (t *Table[K, V, S]) initCapacity(capacity uint64) {
	if capacity == 0 {
		t.ctrl = emptyGroupSingleton[:]
		t.slots = nil
		t.capacity = 0
		t.growthLeft = 0
		return
	}
	ctrlLen := capacity + groupWidth
	newCtrl := make([]byte, ctrlLen)
	for i := range newCtrl {
		newCtrl[i] = ctrlByte(ctrlEmpty)
	}
	newCtrl[capacity] = ctrlByte(ctrlSentinel)
	copy(newCtrl[capacity+1:], newCtrl[:min(capacity, groupWidth-1)])

	t.ctrl = newCtrl
	t.slots = make([]S, capacity)
	t.capacity = capacity
	t.growthLeft = capacityToGrowth(capacity)
}

// resize rebuilds the table at (at least) newCapacityHint, renormalized to
// 2^n-1, reinserting every live element under the new capacity.
func (t *Table[K, V, S]) resize(newCapacityHint uint64) {
	newCapacity := normalizeCapacity(newCapacityHint)
	oldCtrl, oldSlots, oldCapacity := t.ctrl, t.slots, t.capacity

	t.initCapacity(newCapacity)

	for i := uint64(0); i < oldCapacity; i++ {
		if isFull(ctrl(int8(oldCtrl[i]))) {
			k := *t.policy.keyOf(&oldSlots[i])
			h1, h2v := t.hashOf(k)
			t.insertNoGrow(h1, h2v, oldSlots[i])
		}
	}
}

// rehashAndGrowIfNecessary decides whether growth budget exhaustion should
// be solved by reclaiming tombstones in place or by actually growing: past
// one group's worth of capacity, if live elements are at most 25/32 of
// capacity, most of the exhaustion is tombstones, so a same-size rebuild
// recovers them; otherwise the table doubles (plus one, to stay at 2^n-1).
func (t *Table[K, V, S]) rehashAndGrowIfNecessary() {
	switch {
	case t.capacity == 0:
		t.resize(1)
	case t.capacity > groupWidth && 32*t.size <= 25*t.capacity:
		t.dropDeletesWithoutResize()
	default:
		t.resize(t.capacity*2 + 1)
	}
}

// dropDeletesWithoutResize clears every tombstone without changing
// capacity.
//
// The textbook algorithm does this truly in place: convert Deleted<->Full,
// then walk slots fixing up only the ones whose ideal group changed,
// swapping displaced elements and re-examining the slot that received a
// swapped-in element. That swap-and-reprocess step is exactly the kind of
// control flow that is easy to get subtly wrong and hard to verify by
// inspection alone. Since every element must be rehashed and compared
// against its old position either way, this instead rebuilds into a fresh
// same-capacity table via the already-exercised resize() path: same
// asymptotic cost, same observable result (tombstones gone, capacity
// unchanged), and no bespoke in-place swap logic to get wrong.
func (t *Table[K, V, S]) dropDeletesWithoutResize() {
	t.resize(t.capacity)
}

// Reserve ensures the table can accept n more insertions without growing.
func (t *Table[K, V, S]) Reserve(n int) {
	if n <= 0 || uint64(n) <= t.growthLeft {
		return
	}
	wantCapacity := normalizeCapacity(growthToLowerBoundCapacity(t.size + uint64(n)))
	if wantCapacity > t.capacity {
		t.resize(wantCapacity)
	}
}

// Clear removes every element, releasing the backing storage.
func (t *Table[K, V, S]) Clear() {
	t.ctrl = emptyGroupSingleton[:]
	t.slots = nil
	t.capacity = 0
	t.size = 0
	t.growthLeft = 0
}

// Clone returns an independent copy of t holding the same elements.
func (t *Table[K, V, S]) Clone() *Table[K, V, S] {
	out := NewTable[K, V, S](int(t.size), t.policy, t.hasher)
	for i := uint64(0); i < t.capacity; i++ {
		if isFull(ctrl(int8(t.ctrl[i]))) {
			k := *t.policy.keyOf(&t.slots[i])
			v := *t.policy.valueOf(&t.slots[i])
			out.Insert(k, v)
		}
	}
	return out
}

// Range calls f for every live element, stopping early if f returns false.
// Mutating the table from within f is allowed, but which later elements (if
// any) get visited is unspecified: an insert that grows or rebuilds the
// table relocates elements, so some may be skipped or visited twice.
func (t *Table[K, V, S]) Range(f func(k K, v V) bool) {
	for i := uint64(0); i < t.capacity; i++ {
		if isFull(ctrl(int8(t.ctrl[i]))) {
			k := *t.policy.keyOf(&t.slots[i])
			v := *t.policy.valueOf(&t.slots[i])
			if !f(k, v) {
				return
			}
		}
	}
}
