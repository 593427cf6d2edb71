package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
)

// ProductRepository defines the interface for product persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type ProductRepository interface {
	// InsertMuts creates the mutations for inserting a new product and its attributes
	InsertMuts(product *domain.Product) []*spanner.Mutation

	// UpdateMuts creates the mutations for persisting dirty fields and collections.
	// A clean product yields no mutations.
	UpdateMuts(product *domain.Product) []*spanner.Mutation

	// GetByID retrieves a product by ID, reconstructing the domain aggregate
	GetByID(ctx context.Context, productID string) (*domain.Product, error)

	// Exists checks if a product exists
	Exists(ctx context.Context, productID string) (bool, error)
}
