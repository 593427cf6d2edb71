package contracts

import (
	"context"
	"time"
)

// ProductDTO is a data transfer object for product queries.
type ProductDTO struct {
	ProductID   string
	Name        string
	Description string
	Category    string
	Tags        []string
	Attributes  map[string]string // only populated by GetProductByID
	Status      string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListFilter defines filtering options for listing products.
type ListFilter struct {
	Category        string
	Tag             string
	IncludeArchived bool
	PageSize        int
	PageToken       string
}

// ListResult contains paginated product list results.
type ListResult struct {
	Products      []*ProductDTO
	NextPageToken string
	TotalCount    int64
}

// ReadModel defines the interface for product queries.
// Read models can bypass the domain layer for performance.
type ReadModel interface {
	// GetProductByID retrieves a product DTO by ID
	GetProductByID(ctx context.Context, productID string) (*ProductDTO, error)

	// ListProducts retrieves a paginated list of products with filtering
	ListProducts(ctx context.Context, filter *ListFilter) (*ListResult, error)
}

// EventDTO is an outbox event as stored.
type EventDTO struct {
	EventID     string
	EventType   string
	AggregateID string
	Sequence    int64
	Payload     string
	Status      string
	CreatedAt   time.Time
}

// EventsReadModel reads the outbox.
type EventsReadModel interface {
	// ListEvents returns the events of one aggregate in commit order, or the
	// most recent events across all aggregates when aggregateID is empty.
	ListEvents(ctx context.Context, aggregateID string, limit int) ([]*EventDTO, error)
}
