package get_product

import (
	"context"
	"errors"
	"strings"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
)

// ErrMissingProductID is returned before any read when no ID is given.
var ErrMissingProductID = errors.New("product id is required")

// Request identifies the product to read.
type Request struct {
	ProductID string
}

// Query reads one product, attributes included, from the read model.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a product by ID. A missing product surfaces as
// domain.ErrProductNotFound from the read model.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	id := strings.TrimSpace(req.ProductID)
	if id == "" {
		return nil, ErrMissingProductID
	}

	return q.readModel.GetProductByID(ctx, id)
}
