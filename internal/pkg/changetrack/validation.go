package changetrack

import "iter"

// ValidationPredicate vets a single item. collection is the sequence the item
// belongs to, or nil when the item is checked on its own. A rejected item
// should come with a human-readable reason.
type ValidationPredicate[T any] func(item T, collection iter.Seq[T]) (ok bool, reason string)

// Validate runs pred against item and converts a rejection into a
// *ValidationError. A nil predicate accepts everything.
func Validate[T any](pred ValidationPredicate[T], item T, collection iter.Seq[T]) error {
	if pred == nil {
		return nil
	}

	if ok, reason := pred(item, collection); !ok {
		return &ValidationError{Item: item, Reason: reason}
	}
	return nil
}
