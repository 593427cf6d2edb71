package domain

import "github.com/light-bringer/tracked-catalog/internal/pkg/changetrack"

// ChangeTracker tracks which fields have been modified in a domain aggregate.
// This allows repositories to optimize updates by only persisting changed fields.
//
// Collection-valued fields are registered with Track; the tracker marks them
// dirty when the collection reports its first change and accepts them on Clear.
type ChangeTracker struct {
	dirtyFields map[string]bool
	tracked     map[string]changetrack.Tracker
}

// NewChangeTracker creates a new ChangeTracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		dirtyFields: make(map[string]bool),
		tracked:     make(map[string]changetrack.Tracker),
	}
}

// Track binds a change-tracked collection to field.
func (ct *ChangeTracker) Track(field string, t changetrack.Tracker) {
	ct.tracked[field] = t
	if t.IsChanged() {
		ct.MarkDirty(field)
	}
	t.OnInvalidated(func() { ct.MarkDirty(field) })
}

// MarkDirty marks a field as dirty (modified).
func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirtyFields[field] = true
}

// Dirty checks if a field has been modified.
func (ct *ChangeTracker) Dirty(field string) bool {
	return ct.dirtyFields[field]
}

// Clear clears all dirty field markers and accepts every tracked collection.
func (ct *ChangeTracker) Clear() {
	ct.dirtyFields = make(map[string]bool)
	for _, t := range ct.tracked {
		t.AcceptChanges()
	}
}

// HasChanges returns true if any field has been modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirtyFields) > 0
}

// DirtyFields returns a slice of all dirty field names.
func (ct *ChangeTracker) DirtyFields() []string {
	fields := make([]string, 0, len(ct.dirtyFields))
	for field := range ct.dirtyFields {
		fields = append(fields, field)
	}
	return fields
}
