package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func reconstructed(attrs map[string]string) *domain.Product {
	return domain.ReconstructProduct(
		"p-1", "Lamp", "Desk lamp", "lighting",
		[]string{"desk", "led"}, attrs,
		domain.StatusActive, 3, testNow, testNow, nil,
		clock.NewManual(testNow),
	)
}

func TestProductRepo_InsertMuts(t *testing.T) {
	r := NewProductRepo(nil, clock.NewManual(testNow))

	p, err := domain.NewProduct("p-1", "Lamp", "", "lighting", []string{"desk"},
		map[string]string{"color": "black", "watts": "40"}, testNow, clock.NewManual(testNow))
	require.NoError(t, err)

	muts := r.InsertMuts(p)
	assert.Len(t, muts, 3, "product row plus one row per attribute")
}

func TestProductRepo_UpdateMuts(t *testing.T) {
	r := NewProductRepo(nil, clock.NewManual(testNow))

	t.Run("clean product yields nothing", func(t *testing.T) {
		assert.Nil(t, r.UpdateMuts(reconstructed(map[string]string{"color": "black"})))
	})

	t.Run("scalar change touches only the product row", func(t *testing.T) {
		p := reconstructed(map[string]string{"color": "black"})
		require.NoError(t, p.SetName("Floor lamp"))

		assert.Len(t, r.UpdateMuts(p), 1)
	})

	t.Run("tag change touches only the product row", func(t *testing.T) {
		p := reconstructed(nil)
		require.NoError(t, p.AddTag("sale"))

		assert.Len(t, r.UpdateMuts(p), 1)
	})

	t.Run("attribute change replaces the attribute rows", func(t *testing.T) {
		p := reconstructed(map[string]string{"color": "black"})
		require.NoError(t, p.SetAttribute("watts", "60"))

		// product row + delete range + two inserts
		assert.Len(t, r.UpdateMuts(p), 4)
	})

	t.Run("accepted product is clean again", func(t *testing.T) {
		p := reconstructed(map[string]string{"color": "black"})
		require.NoError(t, p.SetAttribute("color", "white"))
		require.NotNil(t, r.UpdateMuts(p))

		p.AcceptChanges()
		assert.Nil(t, r.UpdateMuts(p))
		assert.Equal(t, int64(4), p.Version())
	})
}

func TestListQuery(t *testing.T) {
	tests := []struct {
		name       string
		filter     *contracts.ListFilter
		wantSQL    string
		wantParams map[string]interface{}
		wantSize   int64
		wantOffset int64
	}{
		{
			name:       "nil filter hides archived",
			filter:     nil,
			wantSQL:    "SELECT COUNT(*) FROM products WHERE archived_at IS NULL",
			wantParams: map[string]interface{}{},
			wantSize:   defaultPageSize,
		},
		{
			name:    "category and tag",
			filter:  &contracts.ListFilter{Category: "lighting", Tag: "led", PageSize: 10, PageToken: "20"},
			wantSQL: "SELECT COUNT(*) FROM products WHERE category = @p0 AND EXISTS(SELECT 1 FROM UNNEST(tags) AS elem WHERE LOWER(elem) = LOWER(@p1)) AND archived_at IS NULL",
			wantParams: map[string]interface{}{
				"p0": "lighting",
				"p1": "led",
			},
			wantSize:   10,
			wantOffset: 20,
		},
		{
			name:       "include archived and oversized page",
			filter:     &contracts.ListFilter{IncludeArchived: true, PageSize: 1000},
			wantSQL:    "SELECT COUNT(*) FROM products",
			wantParams: map[string]interface{}{},
			wantSize:   maxPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, size, offset, err := listQuery(tt.filter)
			require.NoError(t, err)

			stmt := b.Count().Build()
			assert.Equal(t, tt.wantSQL, stmt.SQL)
			assert.Equal(t, tt.wantParams, stmt.Params)
			assert.Equal(t, tt.wantSize, size)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestListQuery_InvalidPageToken(t *testing.T) {
	for _, token := range []string{"abc", "-1"} {
		_, _, _, err := listQuery(&contracts.ListFilter{PageToken: token})
		assert.ErrorIs(t, err, ErrInvalidPageToken)
	}
}

func TestOutboxRepo_EnrichEvent(t *testing.T) {
	r := NewOutboxRepo()

	event := &domain.TagAddedEvent{ProductID: "p-1", Tag: "led", Position: 2, AddedAt: testNow}
	out, err := r.EnrichEvent(event, 7)
	require.NoError(t, err)

	assert.NotEmpty(t, out.EventID)
	assert.Equal(t, "product.tag.added", out.EventType)
	assert.Equal(t, "p-1", out.AggregateID)
	assert.Equal(t, int64(7), out.Sequence)
	assert.Equal(t, "pending", out.Status)
	assert.JSONEq(t, `{"ProductID":"p-1","Tag":"led","Position":2,"AddedAt":"2026-03-01T12:00:00Z"}`, out.Payload)

	assert.NotNil(t, r.InsertMut(out))
}

func TestEventsQuery(t *testing.T) {
	stmt := eventsQuery("p-1", 0).Build()
	assert.Equal(t,
		"SELECT event_id, event_type, aggregate_id, sequence, payload, status, created_at FROM outbox_events "+
			"WHERE aggregate_id = @p0 ORDER BY created_at ASC, sequence ASC LIMIT @limit",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "p-1", "limit": int64(defaultPageSize)}, stmt.Params)

	stmt = eventsQuery("", 5).Build()
	assert.Equal(t,
		"SELECT event_id, event_type, aggregate_id, sequence, payload, status, created_at FROM outbox_events "+
			"ORDER BY created_at DESC, sequence DESC LIMIT @limit",
		stmt.SQL)
}
