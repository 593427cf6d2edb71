package m_outbox

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
)

// Model builds mutations for and decodes rows of the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// NewPayload wraps already-encoded JSON. An empty payload is stored as NULL.
func NewPayload(raw string) spanner.NullJSON {
	return spanner.NullJSON{Value: json.RawMessage(raw), Valid: raw != ""}
}

// InsertMut creates an insert mutation. CreatedAt is always the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.EventID,
		data.EventType,
		data.AggregateID,
		data.Sequence,
		data.Payload,
		data.Status,
		spanner.CommitTimestamp,
	})
}

// FromRow decodes a row read with Columns.
func (m *Model) FromRow(row *spanner.Row) (*Data, error) {
	var data Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to decode outbox row: %w", err)
	}
	return &data, nil
}
