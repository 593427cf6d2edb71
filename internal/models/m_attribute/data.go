package m_attribute

// Data represents one row of the product_attributes table.
type Data struct {
	ProductID string `spanner:"product_id"`
	Key       string `spanner:"attr_key"`
	Value     string `spanner:"attr_value"`
}
