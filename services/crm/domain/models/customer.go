package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a CRM contact. Customers are immutable after creation and are
// never deleted through this service.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string // unique across all customers
	Phone     string // empty when not provided
	CreatedAt time.Time
}

// NewCustomer constructs a Customer with generated ID and current timestamp.
// Business validation happens in the domain services package before the
// aggregate is persisted.
func NewCustomer(name, email, phone string) *Customer {
	return &Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
}
