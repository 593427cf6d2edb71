// Package committer collects Spanner mutations from repositories into a
// CommitPlan and applies them atomically.
//
// Aggregates are never written directly. A use case loads an aggregate, calls
// domain methods, asks repositories for the mutations describing what changed,
// and applies the plan once:
//
//	plan := committer.NewPlan()
//	plan.AddMultiple(repo.UpdateMuts(product))
//	plan.Track(product)
//	err := comm.Apply(ctx, plan)
//
// Tracked aggregates have AcceptChanges called only after the commit
// succeeds, so a failed commit leaves their dirty state intact for a retry.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

// ErrVersionConflict is returned when the guarded row changed after the
// aggregate was loaded.
var ErrVersionConflict = errors.New("optimistic lock conflict")

// Acceptor is anything whose pending changes can be marked as persisted.
type Acceptor interface {
	AcceptChanges()
}

// CommitPlan is an ordered set of mutations plus the aggregates they persist.
type CommitPlan struct {
	mutations []*spanner.Mutation
	tracked   []Acceptor
}

// NewPlan creates an empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends a mutation. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple appends every non-nil mutation in muts.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Track registers a to be accepted after a successful commit.
func (cp *CommitPlan) Track(a Acceptor) {
	if a != nil {
		cp.tracked = append(cp.tracked, a)
	}
}

// Mutations returns the collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty reports whether the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Accept accepts every tracked aggregate. Committers call it once the
// plan's mutations are durable.
func (cp *CommitPlan) Accept() {
	for _, a := range cp.tracked {
		a.AcceptChanges()
	}
}

// VersionCheck names the row and column guarding an optimistic commit.
type VersionCheck struct {
	Table    string
	Key      spanner.Key
	Column   string
	Expected int64
}

// Committer applies CommitPlans against a Spanner database.
type Committer struct {
	client  *spanner.Client
	metrics *Metrics
}

// Option configures a Committer.
type Option func(*Committer)

// WithMetrics records commit outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Committer) { c.metrics = m }
}

// NewCommitter creates a Committer.
func NewCommitter(client *spanner.Client, opts ...Option) *Committer {
	c := &Committer{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply commits every mutation in plan in one transaction. An empty plan
// commits nothing; its tracked aggregates are accepted as-is since there is
// nothing pending to persist.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) (err error) {
	defer func() { c.metrics.observe(plan, err) }()

	if plan.IsEmpty() {
		plan.Accept()
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	plan.Accept()
	return nil
}

// ApplyWithVersionCheck commits plan only if the guarded version column
// still holds check.Expected. A mismatch returns an error wrapping
// ErrVersionConflict and nothing is written.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) (err error) {
	defer func() { c.metrics.observe(plan, err) }()

	if plan.IsEmpty() {
		plan.Accept()
		return nil
	}

	_, err = c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, check.Table, check.Key, []string{check.Column})
		if err != nil {
			return fmt.Errorf("failed to read %s.%s: %w", check.Table, check.Column, err)
		}

		var current int64
		if err := row.Column(0, &current); err != nil {
			return fmt.Errorf("failed to parse %s.%s: %w", check.Table, check.Column, err)
		}

		if current != check.Expected {
			return fmt.Errorf("%w: expected version %d, found %d", ErrVersionConflict, check.Expected, current)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	plan.Accept()
	return nil
}
