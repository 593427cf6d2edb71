package m_outbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPayload(t *testing.T) {
	d := &Data{Payload: NewPayload(`{"tag":"eco"}`)}
	assert.True(t, d.Payload.Valid)
	assert.JSONEq(t, `{"tag":"eco"}`, d.PayloadString())

	empty := &Data{Payload: NewPayload("")}
	assert.False(t, empty.Payload.Valid)
	assert.Equal(t, "", empty.PayloadString())
}

func TestInsertMut_NotNil(t *testing.T) {
	assert.NotNil(t, NewModel().InsertMut(&Data{EventID: "e-1", Status: StatusPending}))
}
