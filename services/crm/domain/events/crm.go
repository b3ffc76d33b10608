package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the CRM context.
const (
	TopicCustomerCreated = "customer.created"
	TopicOrderCreated    = "order.created"
)

// CustomerCreatedEvent is published after a new Customer is persisted,
// within the same transaction as the insert.
type CustomerCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderCreatedEvent is published after a new Order is persisted.
// TotalAmount is the exact decimal rendered as a string.
type OrderCreatedEvent struct {
	EventID     uuid.UUID   `json:"event_id"`
	Version     int         `json:"version"`
	OrderID     uuid.UUID   `json:"order_id"`
	CustomerID  uuid.UUID   `json:"customer_id"`
	ProductIDs  []uuid.UUID `json:"product_ids"`
	TotalAmount string      `json:"total_amount"`
	OccurredAt  time.Time   `json:"occurred_at"`
}
