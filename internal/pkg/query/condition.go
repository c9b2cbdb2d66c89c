package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// eqCondition implements equality comparison (field = value).
type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("category", "beauty") generates "category = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{
		field: field,
		value: value,
	}
}

// SQL generates the SQL fragment for equality comparison.
func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s = @%s", c.field, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// containsAnyCondition matches rows where any of the fields contains a term,
// ignoring case.
type containsAnyCondition struct {
	term   string
	fields []string
}

// ContainsAny creates a case-insensitive substring match over several columns.
// Example: ContainsAny("phone", "title", "brand") generates
// "(LOWER(title) LIKE @p0 OR LOWER(brand) LIKE @p0)" with p0 = "%phone%".
func ContainsAny(term string, fields ...string) Condition {
	return &containsAnyCondition{
		term:   term,
		fields: fields,
	}
}

// SQL generates the SQL fragment for the substring match. One parameter is
// shared by every column.
func (c *containsAnyCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)

	parts := make([]string, 0, len(c.fields))
	for _, field := range c.fields {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE @%s", field, paramName))
	}

	sql := "(" + strings.Join(parts, " OR ") + ")"
	params := map[string]interface{}{
		paramName: "%" + escapeLike(strings.ToLower(c.term)) + "%",
	}
	return sql, params
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
