package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ProductCreatedEvent is emitted when a product is created.
type ProductCreatedEvent struct {
	ProductID   string
	Name        string
	Description string
	Category    string
	Tags        []string
	Attributes  map[string]string
	CreatedAt   time.Time
}

func (e *ProductCreatedEvent) EventType() string   { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string { return e.ProductID }

// ProductUpdatedEvent is emitted when scalar product details change.
type ProductUpdatedEvent struct {
	ProductID   string
	Name        string
	Description string
	Category    string
	UpdatedAt   time.Time
}

func (e *ProductUpdatedEvent) EventType() string   { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string { return e.ProductID }

// TagAddedEvent is emitted for every tag that enters the tag list. Position is
// the tag's index at the moment it was added.
type TagAddedEvent struct {
	ProductID string
	Tag       string
	Position  int
	AddedAt   time.Time
}

func (e *TagAddedEvent) EventType() string   { return "product.tag.added" }
func (e *TagAddedEvent) AggregateID() string { return e.ProductID }

// TagRemovedEvent is emitted for every tag that leaves the tag list.
type TagRemovedEvent struct {
	ProductID string
	Tag       string
	Position  int
	RemovedAt time.Time
}

func (e *TagRemovedEvent) EventType() string   { return "product.tag.removed" }
func (e *TagRemovedEvent) AggregateID() string { return e.ProductID }

// TagsClearedEvent is emitted when all tags are removed at once.
type TagsClearedEvent struct {
	ProductID string
	ClearedAt time.Time
}

func (e *TagsClearedEvent) EventType() string   { return "product.tags.cleared" }
func (e *TagsClearedEvent) AggregateID() string { return e.ProductID }

// AttributeSetEvent is emitted when an attribute is added or overwritten.
type AttributeSetEvent struct {
	ProductID string
	Key       string
	Value     string
	SetAt     time.Time
}

func (e *AttributeSetEvent) EventType() string   { return "product.attribute.set" }
func (e *AttributeSetEvent) AggregateID() string { return e.ProductID }

// AttributeRemovedEvent is emitted when an attribute is removed.
type AttributeRemovedEvent struct {
	ProductID string
	Key       string
	RemovedAt time.Time
}

func (e *AttributeRemovedEvent) EventType() string   { return "product.attribute.removed" }
func (e *AttributeRemovedEvent) AggregateID() string { return e.ProductID }

// ProductActivatedEvent is emitted when a product is activated.
type ProductActivatedEvent struct {
	ProductID string
	Timestamp time.Time
}

func (e *ProductActivatedEvent) EventType() string   { return "product.activated" }
func (e *ProductActivatedEvent) AggregateID() string { return e.ProductID }

// ProductDeactivatedEvent is emitted when a product is deactivated.
type ProductDeactivatedEvent struct {
	ProductID string
	Timestamp time.Time
}

func (e *ProductDeactivatedEvent) EventType() string   { return "product.deactivated" }
func (e *ProductDeactivatedEvent) AggregateID() string { return e.ProductID }

// ProductArchivedEvent is emitted when a product is archived (soft deleted).
type ProductArchivedEvent struct {
	ProductID  string
	ArchivedAt time.Time
}

func (e *ProductArchivedEvent) EventType() string   { return "product.archived" }
func (e *ProductArchivedEvent) AggregateID() string { return e.ProductID }
