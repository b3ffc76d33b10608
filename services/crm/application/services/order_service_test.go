package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

func newOrderFixture(t *testing.T) (*OrderService, *fakeOrderRepo, *models.Customer, []*models.Product) {
	t.Helper()

	customer := models.NewCustomer("Alice", "alice@example.com", "")
	customers := &fakeCustomerRepo{customers: []*models.Customer{customer}}

	p1, err := models.NewProduct("Keyboard", decimal.RequireFromString("10.00"), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := models.NewProduct("Mouse", decimal.RequireFromString("15.50"), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	products := &fakeProductRepo{products: []*models.Product{p1, p2}}

	orders := &fakeOrderRepo{}
	return NewOrderService(orders, customers, products), orders, customer, []*models.Product{p1, p2}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("sums the snapshot total exactly", func(t *testing.T) {
		svc, orders, customer, products := newOrderFixture(t)

		o, err := svc.Create(ctx, CreateOrderInput{
			CustomerID: customer.ID.String(),
			ProductIDs: []string{products[0].ID.String(), products[1].ID.String()},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.RequireFromString("25.50")
		if !o.TotalAmount.Equal(want) {
			t.Fatalf("expected total %v, got %v", want, o.TotalAmount)
		}
		if o.CustomerID != customer.ID {
			t.Fatalf("expected customer %v, got %v", customer.ID, o.CustomerID)
		}
		if len(orders.orders) != 1 {
			t.Fatalf("expected 1 persisted order, got %d", len(orders.orders))
		}
	})

	t.Run("keeps an explicit order date", func(t *testing.T) {
		svc, _, customer, products := newOrderFixture(t)

		date := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		o, err := svc.Create(ctx, CreateOrderInput{
			CustomerID: customer.ID.String(),
			ProductIDs: []string{products[0].ID.String()},
			OrderDate:  &date,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !o.OrderDate.Equal(date) {
			t.Fatalf("expected order date %v, got %v", date, o.OrderDate)
		}
	})

	t.Run("unknown customer id fails before products resolve", func(t *testing.T) {
		svc, orders, _, products := newOrderFixture(t)

		_, err := svc.Create(ctx, CreateOrderInput{
			CustomerID: uuid.NewString(),
			ProductIDs: []string{products[0].ID.String(), "also-bad"},
		})
		if !errors.Is(err, crmdomain.ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
		if len(orders.orders) != 0 {
			t.Fatal("store gained a record on failure")
		}
	})

	t.Run("unparseable customer id resolves like an unknown one", func(t *testing.T) {
		svc, _, _, products := newOrderFixture(t)

		_, err := svc.Create(ctx, CreateOrderInput{
			CustomerID: "not-a-uuid",
			ProductIDs: []string{products[0].ID.String()},
		})
		if !errors.Is(err, crmdomain.ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})

	t.Run("empty product list is rejected", func(t *testing.T) {
		svc, _, customer, _ := newOrderFixture(t)

		_, err := svc.Create(ctx, CreateOrderInput{CustomerID: customer.ID.String()})
		if !errors.Is(err, crmdomain.ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}
	})

	t.Run("first unresolvable product id short-circuits", func(t *testing.T) {
		svc, orders, customer, products := newOrderFixture(t)

		unknown := uuid.NewString()
		_, err := svc.Create(ctx, CreateOrderInput{
			CustomerID: customer.ID.String(),
			ProductIDs: []string{unknown, products[0].ID.String()},
		})
		var pnf *crmdomain.ProductNotFoundError
		if !errors.As(err, &pnf) {
			t.Fatalf("expected ProductNotFoundError, got %v", err)
		}
		if pnf.ID != unknown {
			t.Fatalf("expected offending id %q, got %q", unknown, pnf.ID)
		}
		if len(orders.orders) != 0 {
			t.Fatal("store gained a record on failure")
		}
	})

	t.Run("unparseable product id carries the raw value", func(t *testing.T) {
		svc, _, customer, _ := newOrderFixture(t)

		_, err := svc.Create(ctx, CreateOrderInput{
			CustomerID: customer.ID.String(),
			ProductIDs: []string{"not-a-uuid"},
		})
		var pnf *crmdomain.ProductNotFoundError
		if !errors.As(err, &pnf) || pnf.ID != "not-a-uuid" {
			t.Fatalf("expected ProductNotFoundError with raw id, got %v", err)
		}
	})
}

func TestOrderService_FieldResolution(t *testing.T) {
	ctx := context.Background()
	svc, _, customer, products := newOrderFixture(t)

	o, err := svc.Create(ctx, CreateOrderInput{
		CustomerID: customer.ID.String(),
		ProductIDs: []string{products[0].ID.String(), products[1].ID.String()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Products returns the order's line items", func(t *testing.T) {
		got, err := svc.Products(ctx, o.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 products, got %d", len(got))
		}
	})

	t.Run("Customer returns the owner", func(t *testing.T) {
		got, err := svc.Customer(ctx, o.CustomerID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != customer.ID {
			t.Fatalf("expected customer %v, got %v", customer.ID, got.ID)
		}
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, customer, products := newOrderFixture(t)

	for _, ids := range [][]string{
		{products[0].ID.String()},
		{products[0].ID.String(), products[1].ID.String()},
	} {
		if _, err := svc.Create(ctx, CreateOrderInput{CustomerID: customer.ID.String(), ProductIDs: ids}); err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	t.Run("filters by total range", func(t *testing.T) {
		min := decimal.RequireFromString("20")
		got, err := svc.List(ctx, repositories.OrderFilter{TotalMin: &min}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || !got[0].TotalAmount.Equal(decimal.RequireFromString("25.50")) {
			t.Fatalf("unexpected orders: %d", len(got))
		}
	})

	t.Run("orders by total descending", func(t *testing.T) {
		got, err := svc.List(ctx, repositories.OrderFilter{}, "-total_amount")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].TotalAmount.LessThan(got[1].TotalAmount) {
			t.Fatal("totals not non-increasing")
		}
	})
}
