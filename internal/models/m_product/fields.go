package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID   = "product_id"
	Name        = "name"
	Description = "description"
	Category    = "category"
	Tags        = "tags"
	Status      = "status"
	Version     = "version"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
	ArchivedAt  = "archived_at"
)

// Columns lists every column in read order.
var Columns = []string{
	ProductID,
	Name,
	Description,
	Category,
	Tags,
	Status,
	Version,
	CreatedAt,
	UpdatedAt,
	ArchivedAt,
}
