package contracts

import (
	"cloud.google.com/go/spanner"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Sequence    int64
	Payload     string // JSON
	Status      string
}

// OutboxRepository defines the interface for outbox event persistence.
type OutboxRepository interface {
	// InsertMut creates a mutation for inserting an outbox event
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EnrichEvent serializes a domain event and assigns it an ID. sequence
	// is the event's position among the events of one commit.
	EnrichEvent(event domain.DomainEvent, sequence int64) (*OutboxEvent, error)
}
