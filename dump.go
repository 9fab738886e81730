package swisstable

import "github.com/sanity-io/litter"

// dumpEntry is one control-array position, rendered for Dump.
type dumpEntry struct {
	Index int
	Ctrl  string
	Key   any `litter:",omitempty"`
	Value any `litter:",omitempty"`
}

type dumpSnapshot struct {
	Capacity int
	Size     int
	Entries  []dumpEntry
}

// Dump renders the table's capacity, size, and the control byte of every
// slot in [0, capacity) with, for Full slots, the key/value stored there —
// as a human-readable string. The sentinel byte and the cloned tail are not
// included.
// It exists for debugging and tests, not for any stable on-disk format.
func (t *Table[K, V, S]) Dump() string {
	snap := dumpSnapshot{Capacity: int(t.capacity), Size: int(t.size)}
	for i := uint64(0); i < t.capacity; i++ {
		c := ctrl(int8(t.ctrl[i]))
		e := dumpEntry{Index: int(i), Ctrl: ctrlName(c)}
		if isFull(c) {
			e.Key = *t.policy.keyOf(&t.slots[i])
			e.Value = *t.policy.valueOf(&t.slots[i])
		}
		snap.Entries = append(snap.Entries, e)
	}
	return litter.Sdump(snap)
}
