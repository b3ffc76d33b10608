package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/crmgraph/pkg/database"
	"github.com/ghuser/crmgraph/pkg/events"
	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	domainevents "github.com/ghuser/crmgraph/services/crm/domain/events"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// customerSortColumns whitelists order_by fields for customer queries.
var customerSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"phone":      "phone",
	"created_at": "created_at",
}

// CustomerRepository implements repositories.CustomerRepository against PostgreSQL.
type CustomerRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewCustomerRepository returns a CustomerRepository backed by the given pool
// and event bus. The bus publishes CustomerCreatedEvents in the save transaction.
func NewCustomerRepository(db *database.Database, bus *events.EventBus) *CustomerRepository {
	return &CustomerRepository{db: db, bus: bus}
}

// Save persists a new Customer and publishes a CustomerCreatedEvent within the
// same transaction. Concurrent duplicate emails that pass the pre-check are
// arbitrated here by the unique constraint and surface as EmailExistsError.
func (r *CustomerRepository) Save(ctx context.Context, c *models.Customer) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.Insert("customers").
			Columns("id", "name", "email", "phone", "created_at").
			Values(c.ID, c.Name, c.Email, c.Phone, c.CreatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert customer: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return &crmdomain.EmailExistsError{Email: c.Email}
			}
			return fmt.Errorf("insert customer: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, c); err != nil {
				return fmt.Errorf("publish customer created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a Customer by ID. Returns ErrCustomerNotFound if not found.
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query, args, err := psql.Select("id", "name", "email", "phone", "created_at").
		From("customers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select customer: %w", err)
	}

	var c models.Customer
	row := r.db.DB().QueryRowContext(ctx, query, args...)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, crmdomain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

// EmailExists reports whether any persisted customer has the given email.
func (r *CustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)", email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// Find retrieves customers matching filter, ordered per sort.
func (r *CustomerRepository) Find(ctx context.Context, filter repositories.CustomerFilter, sort repositories.Sort) ([]*models.Customer, error) {
	q := psql.Select("id", "name", "email", "phone", "created_at").From("customers")

	if filter.NameContains != "" {
		q = q.Where(sq.ILike{"name": "%" + filter.NameContains + "%"})
	}
	if filter.EmailContains != "" {
		q = q.Where(sq.ILike{"email": "%" + filter.EmailContains + "%"})
	}
	if filter.PhonePrefix != "" {
		q = q.Where(sq.Like{"phone": filter.PhonePrefix + "%"})
	}
	if filter.CreatedFrom != nil {
		q = q.Where(sq.GtOrEq{"created_at": *filter.CreatedFrom})
	}
	if filter.CreatedTo != nil {
		q = q.Where(sq.LtOrEq{"created_at": *filter.CreatedTo})
	}

	q, err := applySort(q, sort, customerSortColumns)
	if err != nil {
		return nil, err
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select customers: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) publishCreated(tx *sql.Tx, c *models.Customer) error {
	event := domainevents.CustomerCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		CustomerID: c.ID,
		Name:       c.Name,
		Email:      c.Email,
		OccurredAt: c.CreatedAt,
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
	return p.Publish(domainevents.TopicCustomerCreated, msg)
}
