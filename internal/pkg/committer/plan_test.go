package committer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/tracked-catalog/internal/pkg/changetrack"
)

func TestCommitPlan_Add(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	plan.Add(spanner.Delete("products", spanner.Key{"p-1"}))
	plan.AddMultiple([]*spanner.Mutation{
		nil,
		spanner.Delete("products", spanner.Key{"p-2"}),
	})

	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 2, plan.Count())
	assert.Len(t, plan.Mutations(), 2)
}

func TestCommitter_ApplyEmptyPlanAcceptsTracked(t *testing.T) {
	tags := changetrack.NewList[string]()
	tags.Add("sale")
	require.True(t, tags.IsChanged())

	plan := NewPlan()
	plan.Track(tags)
	plan.Track(nil)

	// An empty plan never touches the client.
	c := NewCommitter(nil)
	require.NoError(t, c.Apply(context.Background(), plan))
	assert.False(t, tags.IsChanged())

	tags.Add("new")
	require.NoError(t, c.ApplyWithVersionCheck(context.Background(), VersionCheck{
		Table:    "products",
		Key:      spanner.Key{"p-1"},
		Column:   "version",
		Expected: 1,
	}, plan))
	assert.False(t, tags.IsChanged())
}

func TestCommitPlan_AcceptRunsInTrackOrder(t *testing.T) {
	var order []string
	first := changetrack.NewMap[string, string]()
	second := changetrack.NewMap[string, string]()
	first.OnChangesAccepted(func() { order = append(order, "first") })
	second.OnChangesAccepted(func() { order = append(order, "second") })

	plan := NewPlan()
	plan.Track(first)
	plan.Track(second)
	plan.Accept()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCommitter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := NewCommitter(nil, WithMetrics(m))

	plan := NewPlan()
	plan.Track(changetrack.NewList[int]())
	require.NoError(t, c.Apply(context.Background(), plan))

	assert.Equal(t, 1.0, promtest.ToFloat64(m.commits.WithLabelValues(ResultEmpty)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.accepted))
	assert.Equal(t, 0.0, promtest.ToFloat64(m.mutations))

	m.observe(plan, fmt.Errorf("wrapped: %w", ErrVersionConflict))
	m.observe(plan, errors.New("unavailable"))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.commits.WithLabelValues(ResultConflict)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.commits.WithLabelValues(ResultFailed)))

	full := NewPlan()
	full.Add(spanner.Delete("products", spanner.Key{"p-1"}))
	full.Add(spanner.Delete("products", spanner.Key{"p-2"}))
	m.observe(full, nil)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.commits.WithLabelValues(ResultCommitted)))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.mutations))

	count, err := promtest.GatherAndCount(reg, "catalog_committer_commits_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe(NewPlan(), nil) })
}
