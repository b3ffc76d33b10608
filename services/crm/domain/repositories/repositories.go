// Package repositories defines the persistence interfaces for the CRM
// aggregates. The domain layer owns these interfaces; infrastructure
// implements them.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/crmgraph/services/crm/domain/models"
)

// CustomerFilter narrows customer list queries. Zero values mean "no filter".
type CustomerFilter struct {
	NameContains  string
	EmailContains string
	PhonePrefix   string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// ProductFilter narrows product list queries.
type ProductFilter struct {
	NameContains string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	StockMin     *int32
	StockMax     *int32
}

// OrderFilter narrows order list queries.
type OrderFilter struct {
	CustomerNameContains string
	TotalMin             *decimal.Decimal
	TotalMax             *decimal.Decimal
	DateFrom             *time.Time
	DateTo               *time.Time
	ProductID            *uuid.UUID
}

// CustomerRepository is the persistence interface for the Customer aggregate.
type CustomerRepository interface {
	// Save persists a new Customer. Returns EmailExistsError when the unique
	// email constraint is violated at the storage layer.
	Save(ctx context.Context, c *models.Customer) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)

	// EmailExists reports whether any persisted customer has the given email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Find retrieves customers matching filter, ordered by sort.
	// A zero Sort returns the store's default order.
	Find(ctx context.Context, filter CustomerFilter, sort Sort) ([]*models.Customer, error)
}

// ProductRepository is the persistence interface for the Product aggregate.
type ProductRepository interface {
	Save(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Find(ctx context.Context, filter ProductFilter, sort Sort) ([]*models.Product, error)
}

// OrderRepository is the persistence interface for the Order aggregate.
type OrderRepository interface {
	// Save persists the order and its product associations in one transaction.
	Save(ctx context.Context, o *models.Order) error

	Find(ctx context.Context, filter OrderFilter, sort Sort) ([]*models.Order, error)

	// ProductsByOrderID returns the products associated with an order.
	ProductsByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.Product, error)
}
