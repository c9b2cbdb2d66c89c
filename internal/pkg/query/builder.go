package query

import (
	"slices"
	"strings"

	"cloud.google.com/go/spanner"
)

// Select is an immutable SELECT over a single table. Every method returns a
// copy, so a base query can be shared between the page and count variants.
type Select struct {
	table   string
	columns []string
	filters []Condition
	order   []string
	limit   int64
	offset  int64
}

// From starts a query over table.
func From(table string) Select {
	return Select{table: table}
}

// Columns appends projected columns. No columns selects *.
func (s Select) Columns(columns ...string) Select {
	s.columns = slices.Concat(s.columns, columns)
	return s
}

// Where adds a filter. Filters are joined with AND.
func (s Select) Where(c Condition) Select {
	s.filters = slices.Concat(s.filters, []Condition{c})
	return s
}

// Ascending appends an ascending sort key.
func (s Select) Ascending(column string) Select {
	s.order = slices.Concat(s.order, []string{column + " ASC"})
	return s
}

// Descending appends a descending sort key.
func (s Select) Descending(column string) Select {
	s.order = slices.Concat(s.order, []string{column + " DESC"})
	return s
}

// Page restricts the result to limit rows after skipping skip rows.
// A non-positive limit removes paging entirely; Spanner only accepts
// OFFSET after LIMIT.
func (s Select) Page(skip, limit int) Select {
	if limit <= 0 {
		s.limit, s.offset = 0, 0
		return s
	}
	s.limit = int64(limit)
	s.offset = max(int64(skip), 0)
	return s
}

// Count turns the query into SELECT COUNT(*) with the same filters.
func (s Select) Count() Select {
	s.columns = []string{"COUNT(*)"}
	s.order = nil
	s.limit, s.offset = 0, 0
	return s
}

// Paged returns the statement for one page together with the count
// statement over the same filters.
func (s Select) Paged(skip, limit int) (page, count spanner.Statement) {
	return s.Page(skip, limit).Statement(), s.Count().Statement()
}

// Statement renders the query with generated @pN parameters.
func (s Select) Statement() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("SELECT ")
	if len(s.columns) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(s.columns, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(s.table)

	if len(s.filters) > 0 {
		parts := make([]string, 0, len(s.filters))
		next := 0
		for _, c := range s.filters {
			fragment, condParams := c.SQL(next)
			parts = append(parts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
			next += len(condParams)
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(parts, " AND "))
	}

	if len(s.order) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(s.order, ", "))
	}

	if s.limit > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = s.limit
		if s.offset > 0 {
			sql.WriteString(" OFFSET @offset")
			params["offset"] = s.offset
		}
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}
