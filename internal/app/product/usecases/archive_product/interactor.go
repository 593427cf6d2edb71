package archive_product

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/models/m_product"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/pkg/committer"
)

// Request contains the product ID to archive.
type Request struct {
	ProductID string
	Version   int64 // For optimistic locking; 0 uses the loaded version
}

// Interactor handles the archive product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
}

// NewInteractor creates a new archive product interactor.
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

// Execute archives a product (soft delete) following the Golden Mutation Pattern.
// Returns the timestamp when the product was archived.
func (i *Interactor) Execute(ctx context.Context, req *Request) (time.Time, error) {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return time.Time{}, err
	}

	// 2. Call domain method
	now := i.clock.Now()
	if err := product.Archive(now); err != nil {
		return time.Time{}, err
	}

	// 3. Create commit plan
	plan := committer.NewPlan()

	// 4. Add repository mutations
	plan.AddMultiple(i.repo.UpdateMuts(product))

	// 5. Add outbox events
	for seq, event := range product.DomainEvents() {
		outboxEvent, err := i.outboxRepo.EnrichEvent(event, int64(seq))
		if err != nil {
			return time.Time{}, err
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
		return time.Time{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Clear events only after successful commit to prevent loss on retry
	product.ClearEvents()

	return now, nil
}
