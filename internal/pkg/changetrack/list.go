package changetrack

import (
	"iter"
	"slices"
)

// List is an ordered, change-tracked sequence of items.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type List[T any] struct {
	State

	items     []T
	equal     func(a, b T) bool
	validator ValidationPredicate[T]

	added   registry[ItemChange[T]]
	removed registry[ItemChange[T]]
	cleared registry[struct{}]
}

// ListOption configures a List at construction time.
type ListOption[T any] func(*List[T])

// WithValidator attaches a validation predicate to the list. The predicate is
// only run when Validate is called.
func WithValidator[T any](pred ValidationPredicate[T]) ListOption[T] {
	return func(l *List[T]) {
		l.validator = pred
	}
}

// NewList creates an empty list whose items are compared with ==.
//
// Interface-typed items whose dynamic type is not comparable make == panic;
// use NewListFunc for those.
func NewList[T comparable](opts ...ListOption[T]) *List[T] {
	return NewListFunc(equalComparable[T], nil, opts...)
}

// NewListFrom creates a list holding a copy of items. The new list is clean.
func NewListFrom[T comparable](items []T, opts ...ListOption[T]) *List[T] {
	return NewListFunc(equalComparable[T], items, opts...)
}

// NewListFunc creates a list holding a copy of items and using equal to
// compare them. equal decides which value Remove and IndexOf find and whether
// Set is a no-op. It panics if equal is nil.
func NewListFunc[T any](equal func(a, b T) bool, items []T, opts ...ListOption[T]) *List[T] {
	if equal == nil {
		panic("changetrack: nil equal func")
	}
	l := &List[T]{
		items: slices.Clone(items),
		equal: equal,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func equalComparable[T comparable](a, b T) bool {
	return a == b
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the item at index i.
func (l *List[T]) At(i int) (T, error) {
	if err := l.checkIndex(i, len(l.items)); err != nil {
		var zero T
		return zero, err
	}
	return l.items[i], nil
}

// Set replaces the item at index i. Writing a value equal to the current one
// changes nothing and notifies nobody. Otherwise the old value is reported
// removed and then the new value added, both at i.
func (l *List[T]) Set(i int, item T) error {
	if err := l.checkIndex(i, len(l.items)); err != nil {
		return err
	}

	old := l.items[i]
	if l.equal(old, item) {
		return nil
	}

	l.items[i] = item
	l.markChanged()
	l.removed.emit(ItemChange[T]{Item: old, Index: i})
	l.added.emit(ItemChange[T]{Item: item, Index: i})

	return nil
}

// Add appends item to the end of the list.
func (l *List[T]) Add(item T) {
	l.items = append(l.items, item)
	l.markChanged()
	l.added.emit(ItemChange[T]{Item: item, Index: len(l.items) - 1})
}

// Insert places item at index i, shifting later items up by one. i may equal
// Len, which appends.
func (l *List[T]) Insert(i int, item T) error {
	if err := l.checkIndex(i, len(l.items)+1); err != nil {
		return err
	}

	l.items = slices.Insert(l.items, i, item)
	l.markChanged()
	l.added.emit(ItemChange[T]{Item: item, Index: i})

	return nil
}

// Remove deletes the first item equal to item and reports whether one was
// found.
func (l *List[T]) Remove(item T) bool {
	i := l.IndexOf(item)
	if i < 0 {
		return false
	}

	l.removeAt(i)
	return true
}

// RemoveAt deletes the item at index i, shifting later items down by one.
func (l *List[T]) RemoveAt(i int) error {
	if err := l.checkIndex(i, len(l.items)); err != nil {
		return err
	}

	l.removeAt(i)
	return nil
}

func (l *List[T]) removeAt(i int) {
	old := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	l.markChanged()
	l.removed.emit(ItemChange[T]{Item: old, Index: i})
}

// Clear removes every item. A single OnCleared notification is sent instead
// of one removal per item. Clearing an empty list does nothing.
func (l *List[T]) Clear() {
	if len(l.items) == 0 {
		return
	}

	clear(l.items)
	l.items = l.items[:0]
	l.markChanged()
	l.cleared.emit(struct{}{})
}

// Contains reports whether an item equal to item is present.
func (l *List[T]) Contains(item T) bool {
	return l.IndexOf(item) >= 0
}

// IndexOf returns the index of the first item equal to item, or -1.
func (l *List[T]) IndexOf(item T) int {
	return slices.IndexFunc(l.items, func(v T) bool { return l.equal(v, item) })
}

// All iterates over index/item pairs. The list must not be mutated during
// iteration.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values iterates over the items in order.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// AcceptChanges clears the dirty flag and notifies OnChangesAccepted
// observers, even when the list was already clean.
func (l *List[T]) AcceptChanges() {
	l.acceptChanges()
}

// Validate runs the predicate configured with WithValidator against item,
// passing the current contents as the collection. Without a predicate every
// item is accepted.
func (l *List[T]) Validate(item T) error {
	return Validate(l.validator, item, l.Values())
}

// OnItemAdded registers fn to run after an item is added, inserted, or
// written by Set.
func (l *List[T]) OnItemAdded(fn func(ItemChange[T])) Subscription {
	return l.added.add(fn)
}

// OnItemRemoved registers fn to run after an item is removed or overwritten
// by Set.
func (l *List[T]) OnItemRemoved(fn func(ItemChange[T])) Subscription {
	return l.removed.add(fn)
}

// OnCleared registers fn to run after Clear empties a non-empty list.
func (l *List[T]) OnCleared(fn func()) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return l.cleared.add(func(struct{}) { fn() })
}

func (l *List[T]) checkIndex(i, limit int) error {
	if i < 0 || i >= limit {
		return &IndexError{Index: i, Len: len(l.items)}
	}
	return nil
}
