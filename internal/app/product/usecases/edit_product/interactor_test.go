package edit_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
	"github.com/light-bringer/tracked-catalog/internal/app/product/repo"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/pkg/committer"
	"github.com/light-bringer/tracked-catalog/internal/testutil"
)

const productID = "p-1"

func setup(t *testing.T) (*Interactor, *testutil.MemoryRepo, *testutil.Committer) {
	t.Helper()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	clk := clock.NewManual(now)
	memRepo := testutil.NewMemoryRepo(clk)
	memRepo.Put(domain.ReconstructProduct(
		productID, "Lamp", "Desk lamp", "lighting",
		[]string{"desk", "led"},
		map[string]string{"color": "black", "watts": "40"},
		domain.StatusActive, 5, now, now, nil, clk,
	))

	comm := testutil.NewCommitter(memRepo)
	return NewInteractor(memRepo, repo.NewOutboxRepo(), comm, clk), memRepo, comm
}

func ptr(s string) *string { return &s }

func TestEditProduct_NoChanges(t *testing.T) {
	interactor, memRepo, comm := setup(t)

	resp, err := interactor.Execute(context.Background(), &Request{
		ProductID:     productID,
		Name:          ptr("Lamp"),
		SetAttributes: map[string]string{"color": "black"},
		RenameTags:    []TagRename{{From: "led", To: "LED"}},
	})
	require.NoError(t, err)

	assert.False(t, resp.Changed)
	assert.Equal(t, int64(5), resp.Version)
	assert.Nil(t, comm.LastPlan())
	assert.Equal(t, int64(5), memRepo.Version(productID))
}

func TestEditProduct_TagsAndAttributes(t *testing.T) {
	interactor, memRepo, comm := setup(t)
	ctx := context.Background()

	resp, err := interactor.Execute(ctx, &Request{
		ProductID:        productID,
		RemoveTags:       []string{"DESK"},
		RenameTags:       []TagRename{{From: "led", To: "dimmable"}},
		AddTags:          []string{"sale"},
		RemoveAttributes: []string{"watts"},
		SetAttributes:    map[string]string{"lumens": "800"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Changed)
	assert.Equal(t, int64(6), resp.Version)
	assert.ElementsMatch(t, []string{domain.FieldTags, domain.FieldAttributes}, resp.DirtyFields)
	// removed(desk) + removed(led) + added(dimmable) + added(sale) + attr removed + attr set
	assert.Equal(t, 6, resp.EventsWritten)

	// one placeholder update mutation plus six outbox rows
	require.NotNil(t, comm.LastPlan())
	assert.Equal(t, 7, comm.LastPlan().Count())

	stored, err := memRepo.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, []string{"dimmable", "sale"}, stored.Tags())
	assert.Equal(t, map[string]string{"color": "black", "lumens": "800"}, stored.Attributes())
	assert.Equal(t, int64(6), stored.Version())
}

func TestEditProduct_ClearCollections(t *testing.T) {
	interactor, memRepo, _ := setup(t)
	ctx := context.Background()

	resp, err := interactor.Execute(ctx, &Request{
		ProductID:       productID,
		ClearTags:       true,
		ClearAttributes: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	// tags cleared + two attribute removals
	assert.Equal(t, 3, resp.EventsWritten)

	stored, err := memRepo.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Empty(t, stored.Tags())
	assert.Empty(t, stored.Attributes())
}

func TestEditProduct_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"missing product", &Request{ProductID: "nope"}, domain.ErrProductNotFound},
		{"unknown tag", &Request{ProductID: productID, RemoveTags: []string{"outdoor"}}, domain.ErrTagNotFound},
		{"duplicate tag", &Request{ProductID: productID, AddTags: []string{"DESK"}}, domain.ErrInvalidTag},
		{"unknown attribute", &Request{ProductID: productID, RemoveAttributes: []string{"size"}}, domain.ErrAttributeNotFound},
		{"empty name", &Request{ProductID: productID, Name: ptr("")}, domain.ErrEmptyName},
		{"stale version", &Request{ProductID: productID, Version: 4, Name: ptr("Floor lamp")}, committer.ErrVersionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interactor, memRepo, _ := setup(t)

			_, err := interactor.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int64(5), memRepo.Version(productID))
		})
	}
}
