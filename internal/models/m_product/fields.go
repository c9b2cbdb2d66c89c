package m_product

// Field name constants for the catalog_products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "catalog_products"

	ProductID       = "product_id"
	Title           = "title"
	Description     = "description"
	Brand           = "brand"
	Category        = "category"
	Thumbnail       = "thumbnail"
	Price           = "price"
	DiscountPercent = "discount_percent"
	Rating          = "rating"
	Stock           = "stock"
	CreatedAt       = "created_at"
	UpdatedAt       = "updated_at"
)

// Columns lists every column in table order.
func Columns() []string {
	return []string{
		ProductID,
		Title,
		Description,
		Brand,
		Category,
		Thumbnail,
		Price,
		DiscountPercent,
		Rating,
		Stock,
		CreatedAt,
		UpdatedAt,
	}
}

// SearchColumns are matched by catalog search.
func SearchColumns() []string {
	return []string{Title, Description, Category, Brand}
}
