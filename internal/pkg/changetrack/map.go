package changetrack

import (
	"iter"
	"maps"
	"slices"
)

// Pair is a single Map entry.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a change-tracked key/value map. Iteration order is unspecified.
// Map does not report item-level changes, only the aggregate dirty flag.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Map[K comparable, V any] struct {
	State

	entries map[K]V
}

// NewMap creates an empty map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{entries: make(map[K]V)}
}

// NewMapFrom creates a map holding a copy of src. The new map is clean.
func NewMapFrom[K comparable, V any](src map[K]V) *Map[K, V] {
	entries := maps.Clone(src)
	if entries == nil {
		entries = make(map[K]V)
	}
	return &Map[K, V]{entries: entries}
}

// NewMapFromPairs creates a map from pairs. A repeated key is an error
// wrapping ErrDuplicateKey. The new map is clean.
func NewMapFromPairs[K comparable, V any](pairs []Pair[K, V]) (*Map[K, V], error) {
	entries := make(map[K]V, len(pairs))
	for _, p := range pairs {
		if _, exists := entries[p.Key]; exists {
			return nil, &KeyError{Key: p.Key, Err: ErrDuplicateKey}
		}
		entries[p.Key] = p.Value
	}
	return &Map[K, V]{entries: entries}, nil
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Get returns the value stored under key, or an error wrapping
// ErrKeyNotFound.
func (m *Map[K, V]) Get(key K) (V, error) {
	v, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, &KeyError{Key: key, Err: ErrKeyNotFound}
	}
	return v, nil
}

// TryGet returns the value stored under key and whether it was present.
func (m *Map[K, V]) TryGet(key K) (V, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Set inserts or overwrites the value under key. It always marks the map
// dirty, even when the stored value does not change.
func (m *Map[K, V]) Set(key K, value V) {
	m.entries[key] = value
	m.markChanged()
}

// Add inserts a new entry. If key is already present the map is left
// untouched and an error wrapping ErrDuplicateKey is returned.
func (m *Map[K, V]) Add(key K, value V) error {
	if _, exists := m.entries[key]; exists {
		return &KeyError{Key: key, Err: ErrDuplicateKey}
	}

	m.entries[key] = value
	m.markChanged()
	return nil
}

// AddPair is Add for a Pair.
func (m *Map[K, V]) AddPair(p Pair[K, V]) error {
	return m.Add(p.Key, p.Value)
}

// Remove deletes key and reports whether it was present. The map is marked
// dirty only when something was removed.
func (m *Map[K, V]) Remove(key K) bool {
	if _, exists := m.entries[key]; !exists {
		return false
	}

	delete(m.entries, key)
	m.markChanged()
	return true
}

// RemovePair removes the entry for p.Key regardless of p.Value.
func (m *Map[K, V]) RemovePair(p Pair[K, V]) bool {
	return m.Remove(p.Key)
}

// ContainsPair reports whether p.Key is present with a value equal to
// p.Value under equal. A nil equal panics.
func (m *Map[K, V]) ContainsPair(p Pair[K, V], equal func(a, b V) bool) bool {
	if equal == nil {
		panic("changetrack: nil equal func")
	}
	v, ok := m.entries[p.Key]
	return ok && equal(v, p.Value)
}

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) bool {
	_, ok := m.entries[key]
	return ok
}

// Keys returns the keys in unspecified order.
func (m *Map[K, V]) Keys() []K {
	return slices.Collect(maps.Keys(m.entries))
}

// Values returns the values in unspecified order.
func (m *Map[K, V]) Values() []V {
	return slices.Collect(maps.Values(m.entries))
}

// All iterates over the entries. The map must not be mutated during
// iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return maps.All(m.entries)
}

// Pairs returns a snapshot of the entries in unspecified order.
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	pairs := make([]Pair[K, V], 0, len(m.entries))
	for k, v := range m.entries {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}
	return pairs
}

// Clear removes every entry. Clearing an empty map does nothing.
func (m *Map[K, V]) Clear() {
	if len(m.entries) == 0 {
		return
	}

	clear(m.entries)
	m.markChanged()
}

// AcceptChanges clears the dirty flag and notifies OnChangesAccepted
// observers, even when the map was already clean.
func (m *Map[K, V]) AcceptChanges() {
	m.acceptChanges()
}
