package repositories

import "strings"

// Sort describes the requested result ordering for list queries.
// Field is a free-form entity field name; whether it is sortable is decided
// at the store boundary, not here. A zero Sort means default store order.
type Sort struct {
	Field string
	Desc  bool
}

// IsZero reports whether no ordering was requested.
func (s Sort) IsZero() bool {
	return s.Field == ""
}

// ParseSort interprets an order_by argument: a field name, optionally
// prefixed with "-" for descending ("-price" sorts by price, descending).
func ParseSort(orderBy string) Sort {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		return Sort{}
	}
	if rest, ok := strings.CutPrefix(orderBy, "-"); ok {
		return Sort{Field: rest, Desc: true}
	}
	return Sort{Field: orderBy}
}
