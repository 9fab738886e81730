package swisstable

import "iter"

// Map is a hash table mapping keys of type K to values of type V, built on
// the flat slot policy: keys and values live inline in the table's backing
// array, so growth and drop-deletes relocate them by copy. This is the
// right default for small, copyable values; use NodeMap when element
// addresses need to survive growth.
type Map[K comparable, V any] struct {
	t *Table[K, V, kvSlot[K, V]]
}

// mapConfig collects New's optional settings.
type mapConfig[K comparable] struct {
	capacityHint int
	hasher       Hasher[K]
}

// Option configures a Map or NodeMap at construction time.
type Option[K comparable] func(*mapConfig[K])

// WithCapacity reserves room for at least n elements up front, avoiding the
// incremental regrowth a zero-hint New would otherwise do as elements are
// added.
func WithCapacity[K comparable](n int) Option[K] {
	return func(c *mapConfig[K]) { c.capacityHint = n }
}

// WithHasher overrides the default runtime-memhash-based Hasher. Tests use
// this for reproducible, adversarial, or deliberately collision-heavy
// hashing.
func WithHasher[K comparable](h Hasher[K]) Option[K] {
	return func(c *mapConfig[K]) { c.hasher = h }
}

func resolveConfig[K comparable](opts []Option[K]) mapConfig[K] {
	cfg := mapConfig[K]{hasher: defaultHasher[K]()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// New constructs an empty Map. A WithCapacity value is only ever a hint:
// New() and New(WithCapacity(0)) both start at zero allocation.
func New[K comparable, V any](opts ...Option[K]) *Map[K, V] {
	cfg := resolveConfig(opts)
	return &Map[K, V]{t: NewTable[K, V, kvSlot[K, V]](cfg.capacityHint, flatPolicy[K, V](), cfg.hasher)}
}

// Get returns the value stored for key, and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) { return m.t.Get(key) }

// Set stores value for key, reporting whether key already had a value.
func (m *Map[K, V]) Set(key K, value V) (existed bool) { return m.t.Insert(key, value) }

// Delete removes key, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) bool { return m.t.Erase(key) }

// Len returns the number of entries currently stored.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// Clear removes every entry.
func (m *Map[K, V]) Clear() { m.t.Clear() }

// Reserve ensures the map can accept n more Sets without regrowing.
func (m *Map[K, V]) Reserve(n int) { m.t.Reserve(n) }

// Clone returns an independent copy holding the same entries.
func (m *Map[K, V]) Clone() *Map[K, V] { return &Map[K, V]{t: m.t.Clone()} }

// Range calls f for every entry in unspecified order, stopping early if f
// returns false. Deleting entries during a Range is safe, since deletion
// never moves other entries. Adding entries during a Range may or may not
// surface them, and an addition that makes the table grow relocates every
// entry, after which entries may be skipped or visited a second time.
func (m *Map[K, V]) Range(f func(key K, value V) bool) { m.t.Range(f) }

// All returns a range-over-func iterator over the map's entries, for
// "for k, v := range m.All()" callers.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) { m.t.Range(yield) }
}

// Dump renders the map's internal control-byte and slot layout, for
// debugging.
func (m *Map[K, V]) Dump() string { return m.t.Dump() }

// Keys returns the map's keys in unspecified order.
func Keys[K comparable, V any](m *Map[K, V]) []K {
	out := make([]K, 0, m.Len())
	m.Range(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Values returns the map's values in unspecified order.
func Values[K comparable, V any](m *Map[K, V]) []V {
	out := make([]V, 0, m.Len())
	m.Range(func(_ K, v V) bool {
		out = append(out, v)
		return true
	})
	return out
}
