// Package changetrack provides generic containers that record whether they
// have been modified since the last accepted checkpoint.
//
// A List or Map behaves like an ordinary slice or map but carries a dirty
// flag. Every real mutation sets the flag; AcceptChanges clears it and marks
// the current contents as the new baseline. Structural no-ops (clearing an
// empty container, writing an equal value into a List slot, removing a key
// that is absent) leave the flag untouched.
//
// # Notifications
//
// Observers register callbacks and receive a Subscription they can use to
// unregister. Two aggregate channels exist on every container:
//
//   - OnInvalidated fires when the flag flips from clean to dirty.
//   - OnChangesAccepted fires when the flag flips back to clean, and on every
//     explicit AcceptChanges call, even if the container was already clean.
//
// List additionally reports item-level changes through OnItemAdded,
// OnItemRemoved and OnCleared. A replacement via Set is reported as a removal
// of the old value followed by an addition of the new value at the same index.
//
// All callbacks run synchronously on the mutating goroutine, in registration
// order, after the backing storage and the dirty flag have been updated.
//
// # Concurrency
//
// Containers are NOT thread-safe. Callers sharing one across goroutines must
// provide their own mutual exclusion. Callbacks must not mutate the container
// that is notifying them.
//
// # Validation
//
// ValidationPredicate is an extension point for callers that want to vet items
// before they are stored. A List can carry one (WithValidator) and expose it
// through Validate, but no mutation path invokes it.
package changetrack
