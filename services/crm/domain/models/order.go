package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
)

// Order references exactly one Customer and one or more Products.
// TotalAmount is a snapshot of the referenced products' prices at creation
// time; later price changes never recompute it.
type Order struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	TotalAmount decimal.Decimal
	OrderDate   time.Time
	Products    []*Product
}

// NewOrder constructs an Order for the given customer and resolved products.
// The total is summed in exact decimal arithmetic. A zero orderDate defaults
// to the current time.
func NewOrder(customer *Customer, products []*Product, orderDate time.Time) (*Order, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: customer must not be nil", crmdomain.ErrInvalidInput)
	}
	if len(products) == 0 {
		return nil, crmdomain.ErrEmptyOrder
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	return &Order{
		ID:          uuid.New(),
		CustomerID:  customer.ID,
		TotalAmount: total,
		OrderDate:   orderDate,
		Products:    products,
	}, nil
}
