package m_attribute

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the product_attributes table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a single attribute row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{data.ProductID, data.Key, data.Value})
}

// ReplaceAllMuts deletes every attribute row of productID and inserts the
// given attributes. Mutations within one commit apply in order, so the delete
// runs first.
func (m *Model) ReplaceAllMuts(productID string, attributes map[string]string) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(attributes)+1)
	muts = append(muts, m.DeleteAllMut(productID))
	for k, v := range attributes {
		muts = append(muts, m.InsertMut(&Data{ProductID: productID, Key: k, Value: v}))
	}
	return muts
}

// DeleteAllMut deletes every attribute row belonging to productID.
func (m *Model) DeleteAllMut(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.KeyRange{
		Start: spanner.Key{productID},
		End:   spanner.Key{productID},
		Kind:  spanner.ClosedClosed,
	})
}
