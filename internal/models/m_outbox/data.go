package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is one outbox_events row. Sequence orders events that share a commit
// timestamp so consumers replay item-level changes in the order they happened.
type Data struct {
	EventID     string           `spanner:"event_id"`
	EventType   string           `spanner:"event_type"`
	AggregateID string           `spanner:"aggregate_id"`
	Sequence    int64            `spanner:"sequence"`
	Payload     spanner.NullJSON `spanner:"payload"`
	Status      string           `spanner:"status"`
	CreatedAt   time.Time        `spanner:"created_at"`
}

// PayloadString returns the raw JSON payload, or "" when it is NULL.
func (d *Data) PayloadString() string {
	if !d.Payload.Valid {
		return ""
	}
	return d.Payload.String()
}
