package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ghuser/crmgraph/pkg/database"
	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

// productSortColumns whitelists order_by fields for product queries.
var productSortColumns = map[string]string{
	"name":  "name",
	"price": "price",
	"stock": "stock",
}

// ProductRepository implements repositories.ProductRepository against PostgreSQL.
type ProductRepository struct {
	db *database.Database
}

// NewProductRepository returns a ProductRepository backed by the given pool.
func NewProductRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

// Save persists a new Product.
func (r *ProductRepository) Save(ctx context.Context, p *models.Product) error {
	query, args, err := psql.Insert("products").
		Columns("id", "name", "price", "stock").
		Values(p.ID, p.Name, p.Price, p.Stock).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}

	if _, err := r.db.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a Product by ID. Returns ErrProductNotFound if not found.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query, args, err := psql.Select("id", "name", "price", "stock").
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select product: %w", err)
	}

	var p models.Product
	row := r.db.DB().QueryRowContext(ctx, query, args...)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, crmdomain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

// Find retrieves products matching filter, ordered per sort.
func (r *ProductRepository) Find(ctx context.Context, filter repositories.ProductFilter, sort repositories.Sort) ([]*models.Product, error) {
	q := psql.Select("id", "name", "price", "stock").From("products")

	if filter.NameContains != "" {
		q = q.Where(sq.ILike{"name": "%" + filter.NameContains + "%"})
	}
	if filter.PriceMin != nil {
		q = q.Where(sq.GtOrEq{"price": *filter.PriceMin})
	}
	if filter.PriceMax != nil {
		q = q.Where(sq.LtOrEq{"price": *filter.PriceMax})
	}
	if filter.StockMin != nil {
		q = q.Where(sq.GtOrEq{"stock": *filter.StockMin})
	}
	if filter.StockMax != nil {
		q = q.Where(sq.LtOrEq{"stock": *filter.StockMax})
	}

	q, err := applySort(q, sort, productSortColumns)
	if err != nil {
		return nil, err
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select products: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
