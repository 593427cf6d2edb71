package get_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/tracked-catalog/internal/app/product/contracts"
	"github.com/light-bringer/tracked-catalog/internal/app/product/domain"
)

type stubReadModel struct {
	products map[string]*contracts.ProductDTO
	calls    int
}

func (s *stubReadModel) GetProductByID(_ context.Context, id string) (*contracts.ProductDTO, error) {
	s.calls++
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubReadModel) ListProducts(context.Context, *contracts.ListFilter) (*contracts.ListResult, error) {
	return nil, nil
}

func TestGetProduct(t *testing.T) {
	rm := &stubReadModel{products: map[string]*contracts.ProductDTO{
		"p-1": {ProductID: "p-1", Name: "Lamp", Attributes: map[string]string{"color": "black"}},
	}}
	q := NewQuery(rm)

	t.Run("trims id", func(t *testing.T) {
		p, err := q.Execute(context.Background(), &Request{ProductID: " p-1 "})
		require.NoError(t, err)
		assert.Equal(t, "Lamp", p.Name)
		assert.Equal(t, "black", p.Attributes["color"])
	})

	t.Run("not found", func(t *testing.T) {
		_, err := q.Execute(context.Background(), &Request{ProductID: "p-2"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("blank id never reaches the read model", func(t *testing.T) {
		before := rm.calls
		_, err := q.Execute(context.Background(), &Request{ProductID: "  "})
		assert.ErrorIs(t, err, ErrMissingProductID)
		assert.Equal(t, before, rm.calls)
	})
}
