package swisstable

// kvSlot is the flat (inline) element type: the key and value live directly
// in the slots slice, so growing or rehashing copies them by value.
type kvSlot[K comparable, V any] struct {
	key   K
	value V
}

// slotPolicy bundles the handful of operations a Table needs to perform on
// its slot type S without knowing whether S stores a key/value pair inline
// (flatPolicy) or indirects through a pointer (nodePolicy). Every function
// takes *S, never S, so the same shape works whether S is kvSlot[K,V]
// itself or *kvSlot[K,V].
type slotPolicy[K comparable, V any, S any] struct {
	// init constructs a fresh element at an Empty slot.
	init func(s *S, k K, v V)

	// keyOf returns a pointer to the key stored in s.
	keyOf func(s *S) *K

	// valueOf returns a pointer to the value stored in s.
	valueOf func(s *S) *V

	// transfer moves the element at src into dst, leaving src's storage
	// disposable. For flatPolicy this copies the whole kvSlot by value;
	// for nodePolicy it copies only the pointer, so the pointee's address
	// never changes.
	transfer func(dst, src *S)

	// clear resets s to its zero value, dropping any references it held
	// so the garbage collector can reclaim them.
	clear func(s *S)
}

// flatPolicy stores keys and values inline in the slots slice. Element
// addresses are not stable across growth or drop-deletes: the slice backing
// array is reallocated and old slots are memmove'd into new positions.
func flatPolicy[K comparable, V any]() slotPolicy[K, V, kvSlot[K, V]] {
	return slotPolicy[K, V, kvSlot[K, V]]{
		init: func(s *kvSlot[K, V], k K, v V) {
			s.key = k
			s.value = v
		},
		keyOf:   func(s *kvSlot[K, V]) *K { return &s.key },
		valueOf: func(s *kvSlot[K, V]) *V { return &s.value },
		transfer: func(dst, src *kvSlot[K, V]) {
			*dst = *src
		},
		clear: func(s *kvSlot[K, V]) {
			var zero kvSlot[K, V]
			*s = zero
		},
	}
}

// nodePolicy stores each element behind a pointer allocated once at insert
// time. Growth and drop-deletes relocate only the pointer, so an element's
// address is stable for as long as it remains in the table — the property
// NodeMap exists to demonstrate.
func nodePolicy[K comparable, V any]() slotPolicy[K, V, *kvSlot[K, V]] {
	return slotPolicy[K, V, *kvSlot[K, V]]{
		init: func(s **kvSlot[K, V], k K, v V) {
			*s = &kvSlot[K, V]{key: k, value: v}
		},
		keyOf:   func(s **kvSlot[K, V]) *K { return &(*s).key },
		valueOf: func(s **kvSlot[K, V]) *V { return &(*s).value },
		transfer: func(dst, src **kvSlot[K, V]) {
			*dst = *src
		},
		clear: func(s **kvSlot[K, V]) {
			*s = nil
		},
	}
}
