package list_products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
)

type recordingReadModel struct {
	filter *contracts.ListFilter
}

func (r *recordingReadModel) GetProductByID(context.Context, string) (*contracts.ProductDTO, error) {
	return nil, nil
}

func (r *recordingReadModel) ListProducts(_ context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	r.filter = filter
	return &contracts.ListResult{}, nil
}

func TestListProducts_BuildsFilter(t *testing.T) {
	rm := &recordingReadModel{}

	_, err := NewQuery(rm).Execute(context.Background(), &Request{
		Category:        " lighting ",
		Tag:             "led ",
		IncludeArchived: true,
		PageSize:        20,
		PageToken:       "40",
	})
	require.NoError(t, err)

	assert.Equal(t, &contracts.ListFilter{
		Category:        "lighting",
		Tag:             "led",
		IncludeArchived: true,
		PageSize:        20,
		PageToken:       "40",
	}, rm.filter)
}

func TestListProducts_NormalizesTag(t *testing.T) {
	rm := &recordingReadModel{}

	_, err := NewQuery(rm).Execute(context.Background(), &Request{Tag: "cafe\u0301"})
	require.NoError(t, err)

	assert.Equal(t, "caf\u00e9", rm.filter.Tag)
}
