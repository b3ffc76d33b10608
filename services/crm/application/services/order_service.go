package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

// CreateOrderInput carries the fields for order creation. IDs arrive as raw
// strings; an unparseable id resolves the same way as an unknown one.
// A nil OrderDate defaults to the creation time.
type CreateOrderInput struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}

// OrderService orchestrates creation and retrieval of Orders.
type OrderService struct {
	orders    repositories.OrderRepository
	customers repositories.CustomerRepository
	products  repositories.ProductRepository
}

// NewOrderService returns an OrderService wired with the given repositories.
func NewOrderService(
	orders repositories.OrderRepository,
	customers repositories.CustomerRepository,
	products repositories.ProductRepository,
) *OrderService {
	return &OrderService{orders: orders, customers: customers, products: products}
}

// Create validates references and persists one Order.
// Nothing is written until every reference resolves, so a failure partway
// through product resolution leaves no partial order behind. The total is the
// exact decimal sum of the resolved products' prices at this moment.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	customer, err := s.resolveCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	if len(in.ProductIDs) == 0 {
		return nil, crmdomain.ErrEmptyOrder
	}

	products := make([]*models.Product, 0, len(in.ProductIDs))
	for _, raw := range in.ProductIDs {
		product, err := s.resolveProduct(ctx, raw)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	var orderDate time.Time
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	order, err := models.NewOrder(customer, products, orderDate)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

// List returns orders matching filter, ordered per orderBy.
func (s *OrderService) List(ctx context.Context, filter repositories.OrderFilter, orderBy string) ([]*models.Order, error) {
	orders, err := s.orders.Find(ctx, filter, repositories.ParseSort(orderBy))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Products returns the products associated with an order, for field resolution.
func (s *OrderService) Products(ctx context.Context, orderID uuid.UUID) ([]*models.Product, error) {
	products, err := s.orders.ProductsByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order products: %w", err)
	}
	return products, nil
}

// Customer returns the owning customer of an order, for field resolution.
func (s *OrderService) Customer(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("order customer: %w", err)
	}
	return customer, nil
}

func (s *OrderService) resolveCustomer(ctx context.Context, raw string) (*models.Customer, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, crmdomain.ErrCustomerNotFound
	}
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, crmdomain.ErrCustomerNotFound) {
			return nil, crmdomain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("resolve customer: %w", err)
	}
	return customer, nil
}

func (s *OrderService) resolveProduct(ctx context.Context, raw string) (*models.Product, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &crmdomain.ProductNotFoundError{ID: raw}
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, crmdomain.ErrProductNotFound) {
			return nil, &crmdomain.ProductNotFoundError{ID: raw}
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	return product, nil
}
