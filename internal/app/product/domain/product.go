package domain

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/light-bringer/tracked-catalog/internal/pkg/changetrack"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
)

// Field names for change tracking
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldTags        = "tags"
	FieldAttributes  = "attributes"
	FieldStatus      = "status"
	FieldArchivedAt  = "archived_at"
)

// MaxTagLength is the longest tag accepted, in bytes.
const MaxTagLength = 64

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	StatusInactive ProductStatus = "inactive"
	StatusActive   ProductStatus = "active"
	StatusArchived ProductStatus = "archived"
)

// Product is the aggregate root for catalog management.
//
// Tags are an ordered, case-insensitively unique list; attributes are a
// free-form key/value map. Both are change-tracked collections bound to the
// aggregate's ChangeTracker, so repositories can tell whether they need to be
// rewritten. Tag list notifications are turned into domain events.
type Product struct {
	id          string
	name        string
	description string
	category    string
	tags        *changetrack.List[string]
	attributes  *changetrack.Map[string, string]
	status      ProductStatus
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
	archivedAt  *time.Time

	// persisted is false until the first successful commit.
	persisted bool

	clock   clock.Clock
	changes *ChangeTracker
	events  []DomainEvent
}

// NewProduct creates a new Product aggregate (for creation).
func NewProduct(
	id, name, description, category string,
	tags []string,
	attributes map[string]string,
	now time.Time,
	clk clock.Clock,
) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if category == "" {
		return nil, ErrInvalidCategory
	}

	if _, ok := attributes[""]; ok {
		return nil, ErrEmptyAttributeKey
	}

	tagList := newTagList(nil)
	for _, tag := range tags {
		tag = normalizeTag(tag)
		if err := tagList.Validate(tag); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTag, err)
		}
		tagList.Add(tag)
	}

	p := &Product{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		tags:        tagList,
		attributes:  changetrack.NewMapFrom(attributes),
		status:      StatusInactive,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
		clock:       clk,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}
	p.bindCollections()

	// Mark all fields as dirty for new product
	p.changes.MarkDirty(FieldName)
	p.changes.MarkDirty(FieldDescription)
	p.changes.MarkDirty(FieldCategory)
	p.changes.MarkDirty(FieldTags)
	p.changes.MarkDirty(FieldAttributes)
	p.changes.MarkDirty(FieldStatus)

	p.recordEvent(&ProductCreatedEvent{
		ProductID:   p.id,
		Name:        p.name,
		Description: p.description,
		Category:    p.category,
		Tags:        p.tags.Items(),
		Attributes:  p.Attributes(),
		CreatedAt:   p.createdAt,
	})

	return p, nil
}

// ReconstructProduct reconstitutes a Product from database (for loading existing products).
func ReconstructProduct(
	id, name, description, category string,
	tags []string,
	attributes map[string]string,
	status ProductStatus,
	version int64,
	createdAt, updatedAt time.Time,
	archivedAt *time.Time,
	clk clock.Clock,
) *Product {
	p := &Product{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		tags:        newTagList(tags),
		attributes:  changetrack.NewMapFrom(attributes),
		status:      status,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		archivedAt:  archivedAt,
		persisted:   true,
		clock:       clk,
		changes:     NewChangeTracker(), // Start with clean slate
		events:      make([]DomainEvent, 0),
	}
	p.bindCollections()
	return p
}

func newTagList(tags []string) *changetrack.List[string] {
	return changetrack.NewListFunc(sameTag, tags, changetrack.WithValidator[string](validateTag))
}

func validateTag(tag string, existing iter.Seq[string]) (bool, string) {
	if tag == "" {
		return false, "tag cannot be empty"
	}
	if len(tag) > MaxTagLength {
		return false, fmt.Sprintf("tag longer than %d bytes", MaxTagLength)
	}
	for t := range existing {
		if sameTag(t, tag) {
			return false, fmt.Sprintf("tag %q already present", t)
		}
	}
	return true, ""
}

// bindCollections registers the tracked collections with the change tracker
// and converts tag notifications into domain events.
func (p *Product) bindCollections() {
	p.changes.Track(FieldTags, p.tags)
	p.changes.Track(FieldAttributes, p.attributes)

	p.tags.OnItemAdded(func(c changetrack.ItemChange[string]) {
		p.recordEvent(&TagAddedEvent{ProductID: p.id, Tag: c.Item, Position: c.Index, AddedAt: p.clock.Now()})
	})
	p.tags.OnItemRemoved(func(c changetrack.ItemChange[string]) {
		p.recordEvent(&TagRemovedEvent{ProductID: p.id, Tag: c.Item, Position: c.Index, RemovedAt: p.clock.Now()})
	})
	p.tags.OnCleared(func() {
		p.recordEvent(&TagsClearedEvent{ProductID: p.id, ClearedAt: p.clock.Now()})
	})
}

// Getters
func (p *Product) ID() string                  { return p.id }
func (p *Product) Name() string                { return p.name }
func (p *Product) Description() string         { return p.description }
func (p *Product) Category() string            { return p.category }
func (p *Product) Status() ProductStatus       { return p.status }
func (p *Product) Version() int64              { return p.version }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }
func (p *Product) ArchivedAt() *time.Time      { return p.archivedAt }
func (p *Product) IsPersisted() bool           { return p.persisted }
func (p *Product) Changes() *ChangeTracker     { return p.changes }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// Tags returns a copy of the tags in order.
func (p *Product) Tags() []string {
	return p.tags.Items()
}

// HasTag reports whether tag is present, ignoring case.
func (p *Product) HasTag(tag string) bool {
	return p.tags.Contains(tag)
}

// Attributes returns a copy of the attributes.
func (p *Product) Attributes() map[string]string {
	return maps.Collect(p.attributes.All())
}

// Attribute returns the value of a single attribute.
func (p *Product) Attribute(key string) (string, error) {
	v, err := p.attributes.Get(key)
	if errors.Is(err, changetrack.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrAttributeNotFound, key)
	}
	return v, err
}

// SetName updates the product name.
func (p *Product) SetName(name string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if name == "" {
		return ErrEmptyName
	}

	if name == p.name {
		return nil
	}

	p.name = name
	p.changes.MarkDirty(FieldName)
	p.recordUpdated()

	return nil
}

// SetDescription updates the product description.
func (p *Product) SetDescription(description string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if description == p.description {
		return nil
	}

	p.description = description
	p.changes.MarkDirty(FieldDescription)
	p.recordUpdated()

	return nil
}

// SetCategory updates the product category.
func (p *Product) SetCategory(category string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if category == "" {
		return ErrInvalidCategory
	}

	if category == p.category {
		return nil
	}

	p.category = category
	p.changes.MarkDirty(FieldCategory)
	p.recordUpdated()

	return nil
}

// AddTag appends a tag. Tags are trimmed and must be unique ignoring case.
func (p *Product) AddTag(tag string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	tag = normalizeTag(tag)
	if err := p.tags.Validate(tag); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTag, err)
	}

	p.tags.Add(tag)
	return nil
}

// InsertTag places a tag at position, shifting later tags back.
func (p *Product) InsertTag(position int, tag string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	tag = normalizeTag(tag)
	if err := p.tags.Validate(tag); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTag, err)
	}

	if err := p.tags.Insert(position, tag); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTag, err)
	}
	return nil
}

// RenameTag replaces oldTag with newTag in place. Renaming to a spelling that
// only differs in case is not a change.
func (p *Product) RenameTag(oldTag, newTag string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	i := p.tags.IndexOf(oldTag)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTagNotFound, oldTag)
	}

	newTag = normalizeTag(newTag)
	if !sameTag(oldTag, newTag) {
		if err := p.tags.Validate(newTag); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTag, err)
		}
	}

	return p.tags.Set(i, newTag)
}

// RemoveTag removes a tag, ignoring case.
func (p *Product) RemoveTag(tag string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if !p.tags.Remove(normalizeTag(tag)) {
		return fmt.Errorf("%w: %s", ErrTagNotFound, tag)
	}
	return nil
}

// ClearTags removes every tag.
func (p *Product) ClearTags() error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	p.tags.Clear()
	return nil
}

// SetAttribute adds or overwrites an attribute. Writing the current value is
// not a change.
func (p *Product) SetAttribute(key, value string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if key == "" {
		return ErrEmptyAttributeKey
	}

	if current, ok := p.attributes.TryGet(key); ok && current == value {
		return nil
	}

	p.attributes.Set(key, value)
	p.recordEvent(&AttributeSetEvent{ProductID: p.id, Key: key, Value: value, SetAt: p.clock.Now()})

	return nil
}

// AddAttribute adds an attribute that must not exist yet.
func (p *Product) AddAttribute(key, value string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if key == "" {
		return ErrEmptyAttributeKey
	}

	if err := p.attributes.Add(key, value); err != nil {
		if errors.Is(err, changetrack.ErrDuplicateKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateAttribute, key)
		}
		return err
	}

	p.recordEvent(&AttributeSetEvent{ProductID: p.id, Key: key, Value: value, SetAt: p.clock.Now()})
	return nil
}

// RemoveAttribute removes an attribute.
func (p *Product) RemoveAttribute(key string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if !p.attributes.Remove(key) {
		return fmt.Errorf("%w: %s", ErrAttributeNotFound, key)
	}

	p.recordEvent(&AttributeRemovedEvent{ProductID: p.id, Key: key, RemovedAt: p.clock.Now()})
	return nil
}

// ClearAttributes removes every attribute, emitting one removal event per key
// in key order.
func (p *Product) ClearAttributes() error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	keys := p.attributes.Keys()
	slices.Sort(keys)

	p.attributes.Clear()

	now := p.clock.Now()
	for _, key := range keys {
		p.recordEvent(&AttributeRemovedEvent{ProductID: p.id, Key: key, RemovedAt: now})
	}
	return nil
}

// Activate activates the product.
func (p *Product) Activate(now time.Time) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if p.status == StatusActive {
		return ErrAlreadyActive
	}

	p.status = StatusActive
	p.changes.MarkDirty(FieldStatus)

	p.recordEvent(&ProductActivatedEvent{
		ProductID: p.id,
		Timestamp: now,
	})

	return nil
}

// Deactivate deactivates the product.
func (p *Product) Deactivate(now time.Time) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if p.status == StatusInactive {
		return ErrAlreadyInactive
	}

	p.status = StatusInactive
	p.changes.MarkDirty(FieldStatus)

	p.recordEvent(&ProductDeactivatedEvent{
		ProductID: p.id,
		Timestamp: now,
	})

	return nil
}

// Archive archives the product (soft delete).
func (p *Product) Archive(now time.Time) error {
	if p.status == StatusArchived {
		return ErrAlreadyArchived
	}

	p.status = StatusArchived
	p.archivedAt = &now
	p.changes.MarkDirty(FieldStatus)
	p.changes.MarkDirty(FieldArchivedAt)

	p.recordEvent(&ProductArchivedEvent{
		ProductID:  p.id,
		ArchivedAt: now,
	})

	return nil
}

// IsActive returns true if the product is active.
func (p *Product) IsActive() bool {
	return p.status == StatusActive
}

// IsArchived returns true if the product is archived.
func (p *Product) IsArchived() bool {
	return p.status == StatusArchived
}

// AcceptChanges marks the aggregate as persisted: dirty fields are cleared,
// tracked collections accepted, and the version advanced if an existing row
// was updated. Called by the committer after a successful commit.
func (p *Product) AcceptChanges() {
	if p.persisted && p.changes.HasChanges() {
		p.version++
	}
	p.persisted = true
	p.changes.Clear()
}

// checkNotArchived returns an error if the product is archived.
func (p *Product) checkNotArchived() error {
	if p.status == StatusArchived {
		return ErrCannotModifyArchived
	}
	return nil
}

func (p *Product) recordUpdated() {
	p.updatedAt = p.clock.Now()
	p.recordEvent(&ProductUpdatedEvent{
		ProductID:   p.id,
		Name:        p.name,
		Description: p.description,
		Category:    p.category,
		UpdatedAt:   p.updatedAt,
	})
}

// recordEvent adds a domain event to the list of events.
func (p *Product) recordEvent(event DomainEvent) {
	p.events = append(p.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}
