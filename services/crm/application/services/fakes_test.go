package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

// In-memory repository fakes. They honor filters and sorting closely enough
// for service-level assertions; transactional behavior is covered by the
// postgres implementations.

type fakeCustomerRepo struct {
	customers []*models.Customer
	saveErr   error
	findErr   error
}

func (f *fakeCustomerRepo) Save(_ context.Context, c *models.Customer) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, existing := range f.customers {
		if existing.Email == c.Email {
			return &crmdomain.EmailExistsError{Email: c.Email}
		}
	}
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, crmdomain.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, c := range f.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerRepo) Find(_ context.Context, filter repositories.CustomerFilter, s repositories.Sort) ([]*models.Customer, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}

	out := make([]*models.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		if filter.NameContains != "" && !containsFold(c.Name, filter.NameContains) {
			continue
		}
		if filter.EmailContains != "" && !containsFold(c.Email, filter.EmailContains) {
			continue
		}
		if filter.PhonePrefix != "" && !strings.HasPrefix(c.Phone, filter.PhonePrefix) {
			continue
		}
		out = append(out, c)
	}

	if !s.IsZero() {
		sort.SliceStable(out, func(i, j int) bool {
			var less bool
			switch s.Field {
			case "email":
				less = out[i].Email < out[j].Email
			case "created_at":
				less = out[i].CreatedAt.Before(out[j].CreatedAt)
			default:
				less = out[i].Name < out[j].Name
			}
			if s.Desc {
				return !less
			}
			return less
		})
	}
	return out, nil
}

type fakeProductRepo struct {
	products []*models.Product
	saveErr  error
}

func (f *fakeProductRepo) Save(_ context.Context, p *models.Product) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, crmdomain.ErrProductNotFound
}

func (f *fakeProductRepo) Find(_ context.Context, filter repositories.ProductFilter, s repositories.Sort) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		if filter.NameContains != "" && !containsFold(p.Name, filter.NameContains) {
			continue
		}
		if filter.PriceMin != nil && p.Price.LessThan(*filter.PriceMin) {
			continue
		}
		if filter.PriceMax != nil && p.Price.GreaterThan(*filter.PriceMax) {
			continue
		}
		if filter.StockMin != nil && p.Stock < *filter.StockMin {
			continue
		}
		if filter.StockMax != nil && p.Stock > *filter.StockMax {
			continue
		}
		out = append(out, p)
	}

	if !s.IsZero() {
		sort.SliceStable(out, func(i, j int) bool {
			var less bool
			switch s.Field {
			case "price":
				less = out[i].Price.LessThan(out[j].Price)
			case "stock":
				less = out[i].Stock < out[j].Stock
			default:
				less = out[i].Name < out[j].Name
			}
			if s.Desc {
				return !less
			}
			return less
		})
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders  []*models.Order
	saveErr error
}

func (f *fakeOrderRepo) Save(_ context.Context, o *models.Order) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) Find(_ context.Context, filter repositories.OrderFilter, s repositories.Sort) ([]*models.Order, error) {
	out := make([]*models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		if filter.TotalMin != nil && o.TotalAmount.LessThan(*filter.TotalMin) {
			continue
		}
		if filter.TotalMax != nil && o.TotalAmount.GreaterThan(*filter.TotalMax) {
			continue
		}
		out = append(out, o)
	}

	if !s.IsZero() {
		sort.SliceStable(out, func(i, j int) bool {
			var less bool
			switch s.Field {
			case "total_amount":
				less = out[i].TotalAmount.LessThan(out[j].TotalAmount)
			default:
				less = out[i].OrderDate.Before(out[j].OrderDate)
			}
			if s.Desc {
				return !less
			}
			return less
		})
	}
	return out, nil
}

func (f *fakeOrderRepo) ProductsByOrderID(_ context.Context, orderID uuid.UUID) ([]*models.Product, error) {
	for _, o := range f.orders {
		if o.ID == orderID {
			return o.Products, nil
		}
	}
	return nil, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
