package create_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/pkg/committer"
)

// Request contains the data needed to create a product.
type Request struct {
	Name        string
	Description string
	Category    string
	Tags        []string
	Attributes  map[string]string
}

// Interactor handles the create product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
}

// NewInteractor creates a new create product interactor.
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

// Execute creates a new product following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. Create domain aggregate (validates input)
	productID := uuid.New().String()
	now := i.clock.Now()

	product, err := domain.NewProduct(
		productID,
		req.Name,
		req.Description,
		req.Category,
		req.Tags,
		req.Attributes,
		now,
		i.clock,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	// 2. Create commit plan
	plan := committer.NewPlan()

	// 3. Add repository mutations
	plan.AddMultiple(i.repo.InsertMuts(product))

	// 4. Add outbox events
	for seq, event := range product.DomainEvents() {
		outboxEvent, err := i.outboxRepo.EnrichEvent(event, int64(seq))
		if err != nil {
			return "", err
		}
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	// 5. Apply plan; the product is accepted once the commit succeeds
	plan.Track(product)
	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	product.ClearEvents()

	return product.ID(), nil
}
