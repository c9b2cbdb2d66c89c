package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const table = "catalog_products"

func TestSelect_Projection(t *testing.T) {
	stmt := From(table).Columns("product_id", "title", "category").Statement()
	assert.Equal(t, "SELECT product_id, title, category FROM catalog_products", stmt.SQL)
	assert.Empty(t, stmt.Params)

	all := From(table).Statement()
	assert.Equal(t, "SELECT * FROM catalog_products", all.SQL)
}

func TestSelect_FiltersAreJoinedWithAnd(t *testing.T) {
	stmt := From(table).
		Columns("product_id", "title").
		Where(Eq("category", "beauty")).
		Where(ContainsAny("mascara", "title", "description")).
		Statement()

	assert.Equal(t,
		"SELECT product_id, title FROM catalog_products WHERE category = @p0 AND (LOWER(title) LIKE @p1 OR LOWER(description) LIKE @p1)",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "beauty",
		"p1": "%mascara%",
	}, stmt.Params)
}

func TestSelect_SortKeys(t *testing.T) {
	stmt := From(table).
		Columns("product_id").
		Descending("updated_at").
		Ascending("product_id").
		Statement()

	assert.Equal(t, "SELECT product_id FROM catalog_products ORDER BY updated_at DESC, product_id ASC", stmt.SQL)
}

func TestSelect_Page(t *testing.T) {
	tests := []struct {
		name   string
		skip   int
		limit  int
		sql    string
		params map[string]interface{}
	}{
		{
			name:   "first page omits offset",
			skip:   0,
			limit:  6,
			sql:    "SELECT product_id FROM catalog_products LIMIT @limit",
			params: map[string]interface{}{"limit": int64(6)},
		},
		{
			name:   "later page",
			skip:   12,
			limit:  6,
			sql:    "SELECT product_id FROM catalog_products LIMIT @limit OFFSET @offset",
			params: map[string]interface{}{"limit": int64(6), "offset": int64(12)},
		},
		{
			name:   "no limit drops paging",
			skip:   20,
			limit:  0,
			sql:    "SELECT product_id FROM catalog_products",
			params: map[string]interface{}{},
		},
		{
			name:   "negative skip is clamped",
			skip:   -3,
			limit:  6,
			sql:    "SELECT product_id FROM catalog_products LIMIT @limit",
			params: map[string]interface{}{"limit": int64(6)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := From(table).Columns("product_id").Page(tt.skip, tt.limit).Statement()
			assert.Equal(t, tt.sql, stmt.SQL)
			assert.Equal(t, tt.params, stmt.Params)
		})
	}
}

func TestSelect_Paged(t *testing.T) {
	base := From(table).
		Columns("product_id", "title", "price").
		Where(ContainsAny("Phone", "title", "brand")).
		Ascending("product_id")

	page, count := base.Paged(4, 6)

	assert.Equal(t,
		"SELECT product_id, title, price FROM catalog_products WHERE (LOWER(title) LIKE @p0 OR LOWER(brand) LIKE @p0) ORDER BY product_id ASC LIMIT @limit OFFSET @offset",
		page.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":     "%phone%",
		"limit":  int64(6),
		"offset": int64(4),
	}, page.Params)

	assert.Equal(t, "SELECT COUNT(*) FROM catalog_products WHERE (LOWER(title) LIKE @p0 OR LOWER(brand) LIKE @p0)", count.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "%phone%"}, count.Params)
}

func TestSelect_CountWithoutFilters(t *testing.T) {
	stmt := From(table).Columns("product_id").Page(6, 6).Count().Statement()

	assert.Equal(t, "SELECT COUNT(*) FROM catalog_products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestSelect_IsImmutable(t *testing.T) {
	base := From(table).Columns("product_id")

	brand := base.Where(Eq("brand", "Apple")).Statement()
	category := base.Where(Eq("category", "smartphones")).Statement()

	assert.Contains(t, brand.SQL, "brand = @p0")
	assert.NotContains(t, brand.SQL, "category")
	assert.Contains(t, category.SQL, "category = @p0")
	assert.NotContains(t, category.SQL, "brand")
	assert.Equal(t, "SELECT product_id FROM catalog_products", base.Statement().SQL)
}

func TestCondition_Eq(t *testing.T) {
	sql, params := Eq("category", "beauty").SQL(5)

	assert.Equal(t, "category = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "beauty"}, params)
}

func TestCondition_ContainsAny(t *testing.T) {
	t.Run("lowercases the term", func(t *testing.T) {
		sql, params := ContainsAny("GALAXY", "title", "description", "category", "brand").SQL(0)

		assert.Equal(t,
			"(LOWER(title) LIKE @p0 OR LOWER(description) LIKE @p0 OR LOWER(category) LIKE @p0 OR LOWER(brand) LIKE @p0)",
			sql)
		assert.Equal(t, map[string]interface{}{"p0": "%galaxy%"}, params)
	})

	t.Run("escapes wildcards", func(t *testing.T) {
		_, params := ContainsAny(`50%_off\`, "title").SQL(0)
		assert.Equal(t, `%50\%\_off\\%`, params["p0"])
	})
}
