package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
	"github.com/light-bringer/tracked-catalog/internal/models/m_product"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/pkg/committer"
)

type productRow struct {
	name, description, category string
	tags                        []string
	attributes                  map[string]string
	status                      domain.ProductStatus
	version                     int64
	createdAt, updatedAt        time.Time
	archivedAt                  *time.Time
}

// MemoryRepo is an in-memory ProductRepository. Mutations it returns are
// placeholders; the products they stand for become visible to GetByID when
// a Committer built on the repo commits the plan.
type MemoryRepo struct {
	mu      sync.Mutex
	clock   clock.Clock
	rows    map[string]productRow
	pending []*domain.Product
}

// NewMemoryRepo creates an empty MemoryRepo.
func NewMemoryRepo(clk clock.Clock) *MemoryRepo {
	return &MemoryRepo{clock: clk, rows: make(map[string]productRow)}
}

var _ contracts.ProductRepository = (*MemoryRepo)(nil)

func (r *MemoryRepo) InsertMuts(p *domain.Product) []*spanner.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, p)
	return []*spanner.Mutation{spanner.Insert(m_product.TableName, nil, nil)}
}

func (r *MemoryRepo) UpdateMuts(p *domain.Product) []*spanner.Mutation {
	if !p.Changes().HasChanges() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, p)
	return []*spanner.Mutation{spanner.Update(m_product.TableName, nil, nil)}
}

func (r *MemoryRepo) GetByID(_ context.Context, productID string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	return domain.ReconstructProduct(
		productID, row.name, row.description, row.category,
		row.tags, row.attributes, row.status, row.version,
		row.createdAt, row.updatedAt, row.archivedAt, r.clock,
	), nil
}

func (r *MemoryRepo) Exists(_ context.Context, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.rows[productID]
	return ok, nil
}

// Version returns the stored version of productID, or 0 when absent.
func (r *MemoryRepo) Version(productID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rows[productID].version
}

// Put stores p as committed without going through a plan.
func (r *MemoryRepo) Put(p *domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store(p)
}

func (r *MemoryRepo) flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.pending {
		r.store(p)
	}
	r.pending = nil
}

func (r *MemoryRepo) discard() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = nil
}

func (r *MemoryRepo) store(p *domain.Product) {
	r.rows[p.ID()] = productRow{
		name:        p.Name(),
		description: p.Description(),
		category:    p.Category(),
		tags:        p.Tags(),
		attributes:  p.Attributes(),
		status:      p.Status(),
		version:     p.Version(),
		createdAt:   p.CreatedAt(),
		updatedAt:   p.UpdatedAt(),
		archivedAt:  p.ArchivedAt(),
	}
}

// Committer is an in-memory Committer over a MemoryRepo. Err, when set, fails
// every commit. Successful plans are kept in Plans.
type Committer struct {
	Repo  *MemoryRepo
	Err   error
	Plans []*committer.CommitPlan
}

// NewCommitter creates a Committer that commits into repo.
func NewCommitter(repo *MemoryRepo) *Committer {
	return &Committer{Repo: repo}
}

var _ contracts.Committer = (*Committer)(nil)

func (c *Committer) Apply(_ context.Context, plan *committer.CommitPlan) error {
	if c.Err != nil {
		c.Repo.discard()
		return c.Err
	}

	plan.Accept()
	c.Repo.flush()
	c.Plans = append(c.Plans, plan)
	return nil
}

func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check committer.VersionCheck, plan *committer.CommitPlan) error {
	if !plan.IsEmpty() && len(check.Key) > 0 {
		id, _ := check.Key[0].(string)
		if current := c.Repo.Version(id); current != check.Expected {
			c.Repo.discard()
			return fmt.Errorf("%w: expected version %d, found %d", committer.ErrVersionConflict, check.Expected, current)
		}
	}
	return c.Apply(ctx, plan)
}

// LastPlan returns the most recent committed plan, or nil.
func (c *Committer) LastPlan() *committer.CommitPlan {
	if len(c.Plans) == 0 {
		return nil
	}
	return c.Plans[len(c.Plans)-1]
}
