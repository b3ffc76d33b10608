// Package postgres implements the CRM repository interfaces against
// PostgreSQL. Dynamic filter and ordering clauses are composed with squirrel;
// the free-form order_by contract means unknown sort fields fail here, at the
// store boundary, as hard errors.
package postgres

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

// psql is the shared statement builder using PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// applySort appends an ORDER BY clause for the requested sort, resolving the
// field name through the entity's column whitelist. An unknown field is a
// store-layer fault, not a business-rule failure.
func applySort(q sq.SelectBuilder, sort repositories.Sort, columns map[string]string) (sq.SelectBuilder, error) {
	if sort.IsZero() {
		return q, nil
	}
	col, ok := columns[sort.Field]
	if !ok {
		return q, fmt.Errorf("postgres: unknown sort field %q", sort.Field)
	}
	if sort.Desc {
		return q.OrderBy(col + " DESC"), nil
	}
	return q.OrderBy(col + " ASC"), nil
}
