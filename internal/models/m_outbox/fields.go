package m_outbox

// Column names of the outbox_events table.
const (
	TableName = "outbox_events"

	EventID     = "event_id"
	EventType   = "event_type"
	AggregateID = "aggregate_id"
	Sequence    = "sequence"
	Payload     = "payload"
	Status      = "status"
	CreatedAt   = "created_at"
)

// Columns lists every column in insert and read order.
var Columns = []string{EventID, EventType, AggregateID, Sequence, Payload, Status, CreatedAt}

// StatusPending marks an event no relay has picked up yet.
const StatusPending = "pending"
