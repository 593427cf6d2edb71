package set_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
	"github.com/light-bringer/tracked-catalog/internal/app/product/repo"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/testutil"
)

func TestSetStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	clk := clock.NewManual(now)
	memRepo := testutil.NewMemoryRepo(clk)
	memRepo.Put(domain.ReconstructProduct("p-1", "Lamp", "", "lighting", nil, nil,
		domain.StatusInactive, 1, now, now, nil, clk))
	comm := testutil.NewCommitter(memRepo)
	interactor := NewInteractor(memRepo, repo.NewOutboxRepo(), comm, clk)
	ctx := context.Background()

	require.NoError(t, interactor.Execute(ctx, &Request{ProductID: "p-1", Active: true}))
	stored, err := memRepo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, stored.IsActive())
	assert.Equal(t, int64(2), stored.Version())
	assert.Equal(t, 2, comm.LastPlan().Count(), "status update plus activated event")

	err = interactor.Execute(ctx, &Request{ProductID: "p-1", Active: true})
	assert.ErrorIs(t, err, domain.ErrAlreadyActive)

	require.NoError(t, interactor.Execute(ctx, &Request{ProductID: "p-1", Active: false, Version: 2}))
	stored, err = memRepo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive())
	assert.Equal(t, int64(3), stored.Version())
}
