package set_status

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/models/m_product"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/pkg/committer"
)

// Request contains the product ID and the desired status.
type Request struct {
	ProductID string
	Active    bool
	Version   int64 // For optimistic locking; 0 uses the loaded version
}

// Interactor handles activating and deactivating products.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
}

// NewInteractor creates a new set status interactor.
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

// Execute activates or deactivates a product following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}

	// Note: ClearEvents() is called after successful commit, not in defer
	// This prevents event loss if the commit fails and the operation is retried

	// 2. Call domain method
	now := i.clock.Now()
	if req.Active {
		err = product.Activate(now)
	} else {
		err = product.Deactivate(now)
	}
	if err != nil {
		return err
	}

	// 3. Create commit plan
	plan := committer.NewPlan()

	// 4. Add repository mutations
	plan.AddMultiple(i.repo.UpdateMuts(product))

	// 5. Add outbox events
	for seq, event := range product.DomainEvents() {
		outboxEvent, err := i.outboxRepo.EnrichEvent(event, int64(seq))
		if err != nil {
			return err
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
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Clear events only after successful commit to prevent loss on retry
	product.ClearEvents()

	return nil
}
