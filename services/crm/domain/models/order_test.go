package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
)

func testProducts(t *testing.T) []*Product {
	t.Helper()
	p1, err := NewProduct("Keyboard", decimal.RequireFromString("10.00"), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := NewProduct("Mouse", decimal.RequireFromString("15.50"), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return []*Product{p1, p2}
}

func TestNewOrder(t *testing.T) {
	customer := NewCustomer("Alice", "alice@example.com", "")

	t.Run("sums total in exact decimal arithmetic", func(t *testing.T) {
		o, err := NewOrder(customer, testProducts(t), time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.RequireFromString("25.50")
		if !o.TotalAmount.Equal(want) {
			t.Fatalf("expected TotalAmount %v, got %v", want, o.TotalAmount)
		}
	})

	t.Run("links the customer", func(t *testing.T) {
		o, err := NewOrder(customer, testProducts(t), time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.CustomerID != customer.ID {
			t.Fatalf("expected CustomerID %v, got %v", customer.ID, o.CustomerID)
		}
	})

	t.Run("defaults zero order date to now", func(t *testing.T) {
		before := time.Now().UTC()
		o, err := NewOrder(customer, testProducts(t), time.Time{})
		after := time.Now().UTC()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.OrderDate.Before(before) || o.OrderDate.After(after) {
			t.Fatalf("OrderDate %v not between %v and %v", o.OrderDate, before, after)
		}
	})

	t.Run("keeps an explicit order date", func(t *testing.T) {
		date := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		o, err := NewOrder(customer, testProducts(t), date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !o.OrderDate.Equal(date) {
			t.Fatalf("expected OrderDate %v, got %v", date, o.OrderDate)
		}
	})

	t.Run("rejects nil customer", func(t *testing.T) {
		_, err := NewOrder(nil, testProducts(t), time.Time{})
		if !errors.Is(err, crmdomain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects empty product list", func(t *testing.T) {
		_, err := NewOrder(customer, nil, time.Time{})
		if !errors.Is(err, crmdomain.ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}
	})
}
