package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/crmgraph/pkg/database"
	"github.com/ghuser/crmgraph/pkg/events"
	domainevents "github.com/ghuser/crmgraph/services/crm/domain/events"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

// orderSortColumns whitelists order_by fields for order queries.
var orderSortColumns = map[string]string{
	"order_date":   "o.order_date",
	"total_amount": "o.total_amount",
}

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository backed by the given pool and
// event bus. The bus publishes OrderCreatedEvents in the save transaction.
func NewOrderRepository(db *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: db, bus: bus}
}

// Save persists the Order, its product associations, and an OrderCreatedEvent
// atomically. Referential integrity was already validated by the caller; an
// FK violation here means a concurrent delete and propagates as a store fault.
func (r *OrderRepository) Save(ctx context.Context, o *models.Order) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.Insert("orders").
			Columns("id", "customer_id", "total_amount", "order_date").
			Values(o.ID, o.CustomerID, o.TotalAmount, o.OrderDate).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert order: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		join := psql.Insert("order_products").Columns("order_id", "product_id")
		for _, p := range o.Products {
			join = join.Values(o.ID, p.ID)
		}
		query, args, err = join.ToSql()
		if err != nil {
			return fmt.Errorf("build insert order products: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert order products: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, o); err != nil {
				return fmt.Errorf("publish order created: %w", err)
			}
		}
		return nil
	})
}

// Find retrieves orders matching filter, ordered per sort. Associated
// products are not loaded here; resolve them via ProductsByOrderID.
func (r *OrderRepository) Find(ctx context.Context, filter repositories.OrderFilter, sort repositories.Sort) ([]*models.Order, error) {
	q := psql.Select("o.id", "o.customer_id", "o.total_amount", "o.order_date").
		From("orders o")

	if filter.CustomerNameContains != "" {
		q = q.Join("customers c ON c.id = o.customer_id").
			Where(sq.ILike{"c.name": "%" + filter.CustomerNameContains + "%"})
	}
	if filter.TotalMin != nil {
		q = q.Where(sq.GtOrEq{"o.total_amount": *filter.TotalMin})
	}
	if filter.TotalMax != nil {
		q = q.Where(sq.LtOrEq{"o.total_amount": *filter.TotalMax})
	}
	if filter.DateFrom != nil {
		q = q.Where(sq.GtOrEq{"o.order_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(sq.LtOrEq{"o.order_date": *filter.DateTo})
	}
	if filter.ProductID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = o.id AND op.product_id = ?)",
			*filter.ProductID,
		)
	}

	q, err := applySort(q, sort, orderSortColumns)
	if err != nil {
		return nil, err
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select orders: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var orders []*models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// ProductsByOrderID returns the products associated with an order.
func (r *OrderRepository) ProductsByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.Product, error) {
	query, args, err := psql.Select("p.id", "p.name", "p.price", "p.stock").
		From("products p").
		Join("order_products op ON op.product_id = p.id").
		Where(sq.Eq{"op.order_id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select order products: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order products: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan order product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order products: %w", err)
	}
	return products, nil
}

func (r *OrderRepository) publishCreated(tx *sql.Tx, o *models.Order) error {
	productIDs := make([]uuid.UUID, len(o.Products))
	for i, p := range o.Products {
		productIDs[i] = p.ID
	}
	event := domainevents.OrderCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		ProductIDs:  productIDs,
		TotalAmount: o.TotalAmount.String(),
		OccurredAt:  o.OrderDate,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicOrderCreated, msg)
}
