package list_events

import (
	"context"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
)

// Request selects the events to list. An empty ProductID lists the most
// recent events of every product.
type Request struct {
	ProductID string
	Limit     int
}

// Query handles the list events query use case.
type Query struct {
	readModel contracts.EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel contracts.EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves outbox events.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.EventDTO, error) {
	return q.readModel.ListEvents(ctx, req.ProductID, req.Limit)
}
