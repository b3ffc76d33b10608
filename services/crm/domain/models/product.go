package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
)

// Product is a sellable catalogue entry. Orders reference products but do not
// own them; a product's price at order time is snapshotted into the order total.
type Product struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal // always > 0
	Stock int32           // always >= 0
}

// NewProduct constructs a valid Product or returns a domain error when its
// invariants are violated. Price arithmetic is exact decimal throughout.
func NewProduct(name string, price decimal.Decimal, stock int32) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: product name must not be empty", crmdomain.ErrInvalidInput)
	}
	if !price.IsPositive() {
		return nil, crmdomain.ErrNonPositivePrice
	}
	if stock < 0 {
		return nil, crmdomain.ErrNegativeStock
	}
	return &Product{
		ID:    uuid.New(),
		Name:  name,
		Price: price,
		Stock: stock,
	}, nil
}
