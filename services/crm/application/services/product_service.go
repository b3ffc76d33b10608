package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgvalidator "github.com/ghuser/crmgraph/pkg/validator"
	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

// CreateProductInput carries the fields for product creation. Price arrives
// as the raw string form of the Decimal scalar so that an unparseable value
// is a business-rule failure, not a transport fault. Stock defaults to zero.
type CreateProductInput struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Price string `json:"price" validate:"required"`
	Stock int32  `json:"stock"`
}

// ProductService orchestrates creation and retrieval of Products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService returns a ProductService wired with the given repository.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// Create validates and persists one Product.
// Distinct failure kinds surface as distinct domain errors: an unparseable
// price is ErrInvalidPrice, a non-positive price is ErrNonPositivePrice, and
// negative stock is ErrNegativeStock.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := pkgvalidator.Validate(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", crmdomain.ErrInvalidInput, err)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", crmdomain.ErrInvalidPrice, in.Price)
	}

	product, err := models.NewProduct(in.Name, price, in.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}

// List returns products matching filter, ordered per orderBy.
func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter, orderBy string) ([]*models.Product, error) {
	products, err := s.repo.Find(ctx, filter, repositories.ParseSort(orderBy))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
