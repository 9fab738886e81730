package swisstable

import "iter"

// Set is a hash set of keys of type K, implemented as a Map[K, struct{}] so
// it carries no per-element value storage overhead.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet constructs an empty Set.
func NewSet[K comparable](opts ...Option[K]) *Set[K] {
	return &Set[K]{m: New[K, struct{}](opts...)}
}

// Add inserts k, reporting whether it was newly added (false if k was
// already a member).
func (s *Set[K]) Add(k K) bool {
	existed := s.m.Set(k, struct{}{})
	return !existed
}

// Contains reports whether k is a member.
func (s *Set[K]) Contains(k K) bool {
	_, ok := s.m.Get(k)
	return ok
}

// Remove deletes k, reporting whether it was a member.
func (s *Set[K]) Remove(k K) bool { return s.m.Delete(k) }

// Len returns the number of members.
func (s *Set[K]) Len() int { return s.m.Len() }

// Clear removes every member.
func (s *Set[K]) Clear() { s.m.Clear() }

// Reserve ensures the set can accept n more Adds without regrowing.
func (s *Set[K]) Reserve(n int) { s.m.Reserve(n) }

// Clone returns an independent copy holding the same members.
func (s *Set[K]) Clone() *Set[K] { return &Set[K]{m: s.m.Clone()} }

// Range calls f for every member in unspecified order, stopping early if f
// returns false.
func (s *Set[K]) Range(f func(k K) bool) {
	s.m.Range(func(k K, _ struct{}) bool { return f(k) })
}

// All returns a range-over-func iterator over the set's members.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		s.m.Range(func(k K, _ struct{}) bool { return yield(k) })
	}
}

// Dump renders the set's internal control-byte and slot layout.
func (s *Set[K]) Dump() string { return s.m.Dump() }
