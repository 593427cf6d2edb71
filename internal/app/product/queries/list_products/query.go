package list_products

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
)

// Request contains filtering and pagination parameters.
type Request struct {
	Category        string
	Tag             string // matched ignoring case; normalized to NFC like stored tags
	IncludeArchived bool
	PageSize        int
	PageToken       string
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a paginated list of products with filtering.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ListResult, error) {
	filter := &contracts.ListFilter{
		Category:        strings.TrimSpace(req.Category),
		Tag:             norm.NFC.String(strings.TrimSpace(req.Tag)),
		IncludeArchived: req.IncludeArchived,
		PageSize:        req.PageSize,
		PageToken:       req.PageToken,
	}

	return q.readModel.ListProducts(ctx, filter)
}
