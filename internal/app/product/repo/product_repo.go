package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
	"github.com/light-bringer/tracked-catalog/internal/models/m_attribute"
	"github.com/light-bringer/tracked-catalog/internal/models/m_product"
	"github.com/light-bringer/tracked-catalog/internal/pkg/clock"
	"github.com/light-bringer/tracked-catalog/internal/pkg/query"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client *spanner.Client
	model  *m_product.Model
	attrs  *m_attribute.Model
	clock  clock.Clock
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client, clk clock.Clock) *ProductRepo {
	return &ProductRepo{
		client: client,
		model:  m_product.NewModel(),
		attrs:  m_attribute.NewModel(),
		clock:  clk,
	}
}

var _ contracts.ProductRepository = (*ProductRepo)(nil)

// InsertMuts creates the mutations for inserting a new product: the product
// row followed by one row per attribute.
func (r *ProductRepo) InsertMuts(product *domain.Product) []*spanner.Mutation {
	muts := []*spanner.Mutation{r.model.InsertMut(r.domainToData(product))}
	for k, v := range product.Attributes() {
		muts = append(muts, r.attrs.InsertMut(&m_attribute.Data{
			ProductID: product.ID(),
			Key:       k,
			Value:     v,
		}))
	}
	return muts
}

// UpdateMuts creates the mutations for updating a product (only dirty fields).
// Tags are stored inline and rewritten as a whole; attributes live in a child
// table and are replaced only when the attribute map changed.
func (r *ProductRepo) UpdateMuts(product *domain.Product) []*spanner.Mutation {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}

	if changes.Dirty(domain.FieldDescription) {
		updates[m_product.Description] = product.Description()
	}

	if changes.Dirty(domain.FieldCategory) {
		updates[m_product.Category] = product.Category()
	}

	if changes.Dirty(domain.FieldTags) {
		updates[m_product.Tags] = product.Tags()
	}

	if changes.Dirty(domain.FieldStatus) {
		updates[m_product.Status] = string(product.Status())
	}

	if changes.Dirty(domain.FieldArchivedAt) {
		if archivedAt := product.ArchivedAt(); archivedAt != nil {
			updates[m_product.ArchivedAt] = *archivedAt
		} else {
			updates[m_product.ArchivedAt] = spanner.NullTime{}
		}
	}

	// The version is bumped even when only attributes changed, so concurrent
	// editors of the child rows still conflict on the parent.
	updates[m_product.Version] = product.Version() + 1

	muts := []*spanner.Mutation{r.model.UpdateMut(product.ID(), updates)}

	if changes.Dirty(domain.FieldAttributes) {
		muts = append(muts, r.attrs.ReplaceAllMuts(product.ID(), product.Attributes())...)
	}

	return muts
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
// The product row and its attributes are read from one snapshot.
func (r *ProductRepo) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	attributes, err := readAttributes(ctx, txn, productID)
	if err != nil {
		return nil, err
	}

	return r.dataToDomain(&data, attributes), nil
}

// Exists checks if a product exists.
func (r *ProductRepo) Exists(ctx context.Context, productID string) (bool, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, []string{m_product.ProductID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return row != nil, nil
}

// queryer is satisfied by both *spanner.ReadOnlyTransaction and the
// single-use transaction returned by Client.Single.
type queryer interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// readAttributes loads every attribute row of productID.
func readAttributes(ctx context.Context, q queryer, productID string) (map[string]string, error) {
	stmt := query.From(m_attribute.TableName).
		Select(m_attribute.Key, m_attribute.Value).
		Where(query.Eq(m_attribute.ProductID, productID)).
		Build()

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	attributes := make(map[string]string)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read attributes: %w", err)
		}

		var key, value string
		if err := row.Columns(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to parse attribute: %w", err)
		}
		attributes[key] = value
	}

	return attributes, nil
}

// domainToData converts a domain Product to database Data.
func (r *ProductRepo) domainToData(product *domain.Product) *m_product.Data {
	data := &m_product.Data{
		ProductID:   product.ID(),
		Name:        product.Name(),
		Description: product.Description(),
		Category:    product.Category(),
		Tags:        product.Tags(),
		Status:      string(product.Status()),
		Version:     product.Version(),
		CreatedAt:   product.CreatedAt(),
		UpdatedAt:   product.UpdatedAt(),
	}

	// Handle archived_at (nullable)
	if archivedAt := product.ArchivedAt(); archivedAt != nil {
		data.ArchivedAt = spanner.NullTime{Time: *archivedAt, Valid: true}
	}

	return data
}

// dataToDomain converts database Data to a domain Product.
func (r *ProductRepo) dataToDomain(data *m_product.Data, attributes map[string]string) *domain.Product {
	var archivedAt *time.Time
	if data.ArchivedAt.Valid {
		archivedAt = &data.ArchivedAt.Time
	}

	// Use injected clock for reconstructed products
	return domain.ReconstructProduct(
		data.ProductID,
		data.Name,
		data.Description,
		data.Category,
		data.Tags,
		attributes,
		domain.ProductStatus(data.Status),
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		archivedAt,
		r.clock,
	)
}
