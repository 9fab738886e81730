package swisstable

import "iter"

// NodeMap is a hash table mapping keys of type K to values of type V, built
// on the node slot policy: each element is allocated once, and the table
// stores only a pointer to it. Growing or compacting the table relocates
// pointers, never the pointees, so a *V obtained from GetPtr stays valid
// for as long as the key remains in the map. Map is cheaper for small
// copyable values; NodeMap is for values callers need a stable address
// into, or that are too large to want copied on every rehash.
type NodeMap[K comparable, V any] struct {
	t *Table[K, V, *kvSlot[K, V]]
}

// NewNodeMap constructs an empty NodeMap.
func NewNodeMap[K comparable, V any](opts ...Option[K]) *NodeMap[K, V] {
	cfg := resolveConfig(opts)
	return &NodeMap[K, V]{t: NewTable[K, V, *kvSlot[K, V]](cfg.capacityHint, nodePolicy[K, V](), cfg.hasher)}
}

func (m *NodeMap[K, V]) Get(key K) (V, bool) { return m.t.Get(key) }

func (m *NodeMap[K, V]) Set(key K, value V) (existed bool) { return m.t.Insert(key, value) }

func (m *NodeMap[K, V]) Delete(key K) bool { return m.t.Erase(key) }

func (m *NodeMap[K, V]) Len() int { return m.t.Len() }

func (m *NodeMap[K, V]) Clear() { m.t.Clear() }

func (m *NodeMap[K, V]) Reserve(n int) { m.t.Reserve(n) }

func (m *NodeMap[K, V]) Clone() *NodeMap[K, V] { return &NodeMap[K, V]{t: m.t.Clone()} }

func (m *NodeMap[K, V]) Range(f func(key K, value V) bool) { m.t.Range(f) }

func (m *NodeMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) { m.t.Range(yield) }
}

func (m *NodeMap[K, V]) Dump() string { return m.t.Dump() }

// GetPtr returns a pointer directly into the stored element's value, valid
// until key is deleted or overwritten via Set. Unlike Map, growth and
// drop-deletes never invalidate it.
func (m *NodeMap[K, V]) GetPtr(key K) (*V, bool) { return m.t.ValuePtr(key) }
