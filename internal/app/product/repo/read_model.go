package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
	"github.com/light-bringer/tracked-catalog/internal/models/m_product"
	"github.com/light-bringer/tracked-catalog/internal/pkg/query"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ErrInvalidPageToken is returned when a page token cannot be parsed.
var ErrInvalidPageToken = errors.New("invalid page token")

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) *ReadModelImpl {
	return &ReadModelImpl{
		client: client,
	}
}

var _ contracts.ReadModel = (*ReadModelImpl)(nil)

// GetProductByID retrieves a product DTO by ID, including its attributes.
func (rm *ReadModelImpl) GetProductByID(ctx context.Context, productID string) (*contracts.ProductDTO, error) {
	txn := rm.client.ReadOnlyTransaction()
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

	dto := dataToDTO(&data)
	dto.Attributes, err = readAttributes(ctx, txn, productID)
	if err != nil {
		return nil, err
	}

	return dto, nil
}

// ListProducts retrieves a paginated list of products with filtering.
// Page tokens are row offsets rendered as decimal strings.
func (rm *ReadModelImpl) ListProducts(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	base, pageSize, offset, err := listQuery(filter)
	if err != nil {
		return nil, err
	}

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	var total int64
	countIter := txn.Query(ctx, base.Count().Build())
	err = countIter.Do(func(row *spanner.Row) error {
		return row.Column(0, &total)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	stmt := base.
		Select(m_product.Columns...).
		OrderBy(m_product.CreatedAt, query.Desc).
		Limit(pageSize).
		Offset(offset).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*contracts.ProductDTO, 0, pageSize)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		products = append(products, dataToDTO(&data))
	}

	result := &contracts.ListResult{
		Products:   products,
		TotalCount: total,
	}
	if next := offset + int64(len(products)); next < total && len(products) > 0 {
		result.NextPageToken = strconv.FormatInt(next, 10)
	}

	return result, nil
}

// listQuery translates a filter into the shared base query, the effective
// page size and the starting offset.
func listQuery(filter *contracts.ListFilter) (*query.Builder, int64, int64, error) {
	if filter == nil {
		filter = &contracts.ListFilter{}
	}

	b := query.From(m_product.TableName)

	if filter.Category != "" {
		b = b.Where(query.Eq(m_product.Category, filter.Category))
	}

	if filter.Tag != "" {
		b = b.Where(query.ArrayContainsFold(m_product.Tags, filter.Tag))
	}

	if !filter.IncludeArchived {
		b = b.Where(query.IsNull(m_product.ArchivedAt))
	}

	pageSize := int64(filter.PageSize)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var offset int64
	if filter.PageToken != "" {
		n, err := strconv.ParseInt(filter.PageToken, 10, 64)
		if err != nil || n < 0 {
			return nil, 0, 0, fmt.Errorf("%w: %q", ErrInvalidPageToken, filter.PageToken)
		}
		offset = n
	}

	return b, pageSize, offset, nil
}

// dataToDTO converts database Data to a ProductDTO.
func dataToDTO(data *m_product.Data) *contracts.ProductDTO {
	return &contracts.ProductDTO{
		ProductID:   data.ProductID,
		Name:        data.Name,
		Description: data.Description,
		Category:    data.Category,
		Tags:        data.Tags,
		Status:      data.Status,
		Version:     data.Version,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
