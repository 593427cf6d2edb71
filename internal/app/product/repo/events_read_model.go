package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/models/m_outbox"
	"github.com/light-bringer/tracked-catalog/internal/pkg/query"
)

// EventsReadModel implements EventsReadModel for Spanner.
type EventsReadModel struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{client: client, model: m_outbox.NewModel()}
}

var _ contracts.EventsReadModel = (*EventsReadModel)(nil)

// ListEvents returns outbox events, see contracts.EventsReadModel.
func (rm *EventsReadModel) ListEvents(ctx context.Context, aggregateID string, limit int) ([]*contracts.EventDTO, error) {
	iter := rm.client.Single().Query(ctx, eventsQuery(aggregateID, limit).Build())
	defer iter.Stop()

	var events []*contracts.EventDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		data, err := rm.model.FromRow(row)
		if err != nil {
			return nil, err
		}
		events = append(events, &contracts.EventDTO{
			EventID:     data.EventID,
			EventType:   data.EventType,
			AggregateID: data.AggregateID,
			Sequence:    data.Sequence,
			Payload:     data.PayloadString(),
			Status:      data.Status,
			CreatedAt:   data.CreatedAt,
		})
	}

	return events, nil
}

func eventsQuery(aggregateID string, limit int) *query.Builder {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	b := query.From(m_outbox.TableName).
		Select(m_outbox.Columns...).
		Limit(int64(limit))

	if aggregateID == "" {
		return b.OrderBy(m_outbox.CreatedAt, query.Desc).ThenBy(m_outbox.Sequence, query.Desc)
	}

	return b.Where(query.Eq(m_outbox.AggregateID, aggregateID)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		ThenBy(m_outbox.Sequence, query.Asc)
}
