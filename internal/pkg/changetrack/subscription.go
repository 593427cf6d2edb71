package changetrack

import "slices"

// Subscription is the handle returned when a callback is registered.
// The zero value is valid and Unsubscribe on it does nothing.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the callback. Calling it more than once is harmless.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type registration[E any] struct {
	id uint64
	fn func(E)
}

// registry keeps callbacks in registration order.
type registry[E any] struct {
	nextID  uint64
	entries []registration[E]
}

func (r *registry[E]) add(fn func(E)) Subscription {
	if fn == nil {
		return Subscription{}
	}

	r.nextID++
	id := r.nextID
	r.entries = append(r.entries, registration[E]{id: id, fn: fn})

	return Subscription{cancel: func() { r.remove(id) }}
}

// remove replaces the slice instead of editing it in place so that an emit
// already ranging over the old slice is not disturbed.
func (r *registry[E]) remove(id uint64) {
	idx := slices.IndexFunc(r.entries, func(reg registration[E]) bool { return reg.id == id })
	if idx < 0 {
		return
	}

	entries := make([]registration[E], 0, len(r.entries)-1)
	entries = append(entries, r.entries[:idx]...)
	entries = append(entries, r.entries[idx+1:]...)
	r.entries = entries
}

func (r *registry[E]) emit(e E) {
	for _, reg := range r.entries {
		reg.fn(e)
	}
}
