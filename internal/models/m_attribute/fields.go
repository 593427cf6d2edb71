package m_attribute

// Field name constants for the product_attributes table, interleaved in
// products and keyed by (product_id, attr_key).
const (
	TableName = "product_attributes"

	ProductID = "product_id"
	Key       = "attr_key"
	Value     = "attr_value"
)

// Columns lists every column in read order.
var Columns = []string{ProductID, Key, Value}
