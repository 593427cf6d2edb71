package archive_product

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

func TestArchiveProduct(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	clk := clock.NewManual(now)
	memRepo := testutil.NewMemoryRepo(clk)
	memRepo.Put(domain.ReconstructProduct("p-1", "Lamp", "", "lighting", []string{"led"}, nil,
		domain.StatusActive, 2, now, now, nil, clk))
	comm := testutil.NewCommitter(memRepo)
	interactor := NewInteractor(memRepo, repo.NewOutboxRepo(), comm, clk)
	ctx := context.Background()

	clk.Advance(time.Hour)

	_, err := interactor.Execute(ctx, &Request{ProductID: "p-1", Version: 1})
	assert.ErrorIs(t, err, committer.ErrVersionConflict)

	archivedAt, err := interactor.Execute(ctx, &Request{ProductID: "p-1", Version: 2})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), archivedAt)

	stored, err := memRepo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, stored.IsArchived())
	assert.Equal(t, int64(3), stored.Version())
	require.NotNil(t, stored.ArchivedAt())
	assert.Equal(t, archivedAt, *stored.ArchivedAt())

	_, err = interactor.Execute(ctx, &Request{ProductID: "p-1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyArchived)
}
