package changetrack

// Tracker is implemented by every change-tracked container.
type Tracker interface {
	// IsChanged reports whether the container was modified since the last
	// AcceptChanges call (or since construction).
	IsChanged() bool

	// AcceptChanges marks the current contents as the new baseline.
	AcceptChanges()

	OnInvalidated(fn func()) Subscription
	OnChangesAccepted(fn func()) Subscription
}

// State is the dirty flag shared by List and Map. The zero value is clean and
// has no observers.
//
// NOT thread-safe.
type State struct {
	changed     bool
	invalidated registry[struct{}]
	accepted    registry[struct{}]
}

// IsChanged reports the dirty flag.
func (s *State) IsChanged() bool {
	return s.changed
}

// SetChanged sets the dirty flag. Observers are notified only when the value
// actually flips: OnInvalidated on clean->dirty, OnChangesAccepted on
// dirty->clean.
func (s *State) SetChanged(changed bool) {
	if s.changed == changed {
		return
	}

	s.changed = changed
	if changed {
		s.invalidated.emit(struct{}{})
	} else {
		s.accepted.emit(struct{}{})
	}
}

// OnInvalidated registers fn to run when the flag flips from clean to dirty.
func (s *State) OnInvalidated(fn func()) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return s.invalidated.add(func(struct{}) { fn() })
}

// OnChangesAccepted registers fn to run when changes are accepted.
func (s *State) OnChangesAccepted(fn func()) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return s.accepted.add(func(struct{}) { fn() })
}

// acceptChanges clears the flag and always notifies, unlike SetChanged(false)
// which is silent when the flag is already clear.
func (s *State) acceptChanges() {
	s.changed = false
	s.accepted.emit(struct{}{})
}

// markChanged is called by containers after every real mutation.
func (s *State) markChanged() {
	s.SetChanged(true)
}

var (
	_ Tracker = (*List[int])(nil)
	_ Tracker = (*Map[string, int])(nil)
)
