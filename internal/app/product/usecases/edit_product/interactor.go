package edit_product

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
	"github.com/light-bringer/tracked-catalog/internal/models/m_product"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/pkg/committer"
)

// TagRename replaces the tag From with To, keeping its position.
type TagRename struct {
	From string
	To   string
}

// Request contains the edits to apply to a product. Edits run in field
// order: scalars, then tag clear/remove/rename/add, then attribute
// clear/remove/set.
type Request struct {
	ProductID string
	Version   int64 // For optimistic locking; 0 uses the loaded version

	Name        *string // nil = no change
	Description *string // nil = no change
	Category    *string // nil = no change

	ClearTags  bool
	RemoveTags []string
	RenameTags []TagRename
	AddTags    []string

	ClearAttributes  bool
	RemoveAttributes []string
	SetAttributes    map[string]string // applied in key order
}

// Response reports the outcome of an edit.
type Response struct {
	Changed       bool
	Version       int64
	DirtyFields   []string
	EventsWritten int
}

// Interactor handles the edit product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
}

// NewInteractor creates a new edit product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	outboxRepo contracts.OutboxRepository,
	committer contracts.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute edits a product following the Golden Mutation Pattern. An edit
// that leaves the product unchanged commits nothing.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 2. Call domain methods
	if err := apply(product, req); err != nil {
		return nil, err
	}

	if !product.Changes().HasChanges() {
		return &Response{Version: product.Version()}, nil
	}
	dirty := product.Changes().DirtyFields()

	// 3. Create commit plan
	plan := committer.NewPlan()

	// 4. Add repository mutations (dirty fields only)
	plan.AddMultiple(i.repo.UpdateMuts(product))

	// 5. Add outbox events
	events := product.DomainEvents()
	for seq, event := range events {
		outboxEvent, err := i.outboxRepo.EnrichEvent(event, int64(seq))
		if err != nil {
			return nil, err
		}
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	// 6. Apply plan with optimistic locking
	expected := req.Version
	if expected == 0 {
		expected = product.Version()
	}
	check := committer.VersionCheck{
		Table:    m_product.TableName,
		Key:      spanner.Key{product.ID()},
		Column:   m_product.Version,
		Expected: expected,
	}

	plan.Track(product)
	if err := i.committer.ApplyWithVersionCheck(ctx, check, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	product.ClearEvents()

	return &Response{
		Changed:       true,
		Version:       product.Version(),
		DirtyFields:   dirty,
		EventsWritten: len(events),
	}, nil
}

func apply(product *domain.Product, req *Request) error {
	if req.Name != nil {
		if err := product.SetName(*req.Name); err != nil {
			return err
		}
	}

	if req.Description != nil {
		if err := product.SetDescription(*req.Description); err != nil {
			return err
		}
	}

	if req.Category != nil {
		if err := product.SetCategory(*req.Category); err != nil {
			return err
		}
	}

	if req.ClearTags {
		if err := product.ClearTags(); err != nil {
			return err
		}
	}

	for _, tag := range req.RemoveTags {
		if err := product.RemoveTag(tag); err != nil {
			return fmt.Errorf("remove tag %q: %w", tag, err)
		}
	}

	for _, r := range req.RenameTags {
		if err := product.RenameTag(r.From, r.To); err != nil {
			return fmt.Errorf("rename tag %q: %w", r.From, err)
		}
	}

	for _, tag := range req.AddTags {
		if err := product.AddTag(tag); err != nil {
			return fmt.Errorf("add tag %q: %w", tag, err)
		}
	}

	if req.ClearAttributes {
		if err := product.ClearAttributes(); err != nil {
			return err
		}
	}

	for _, key := range req.RemoveAttributes {
		if err := product.RemoveAttribute(key); err != nil {
			return fmt.Errorf("remove attribute %q: %w", key, err)
		}
	}

	keys := make([]string, 0, len(req.SetAttributes))
	for k := range req.SetAttributes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := product.SetAttribute(k, req.SetAttributes[k]); err != nil {
			return fmt.Errorf("set attribute %q: %w", k, err)
		}
	}

	return nil
}
