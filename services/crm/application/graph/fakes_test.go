package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	appsvcs "github.com/ghuser/crmgraph/services/crm/application/services"
	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
)

// In-memory repositories backing schema execution tests.

type memCustomerRepo struct {
	customers []*models.Customer
}

func (m *memCustomerRepo) Save(_ context.Context, c *models.Customer) error {
	for _, existing := range m.customers {
		if existing.Email == c.Email {
			return &crmdomain.EmailExistsError{Email: c.Email}
		}
	}
	m.customers = append(m.customers, c)
	return nil
}

func (m *memCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, crmdomain.ErrCustomerNotFound
}

func (m *memCustomerRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, c := range m.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCustomerRepo) Find(_ context.Context, filter repositories.CustomerFilter, s repositories.Sort) ([]*models.Customer, error) {
	out := make([]*models.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		if filter.NameContains != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.NameContains)) {
			continue
		}
		if filter.EmailContains != "" && !strings.Contains(strings.ToLower(c.Email), strings.ToLower(filter.EmailContains)) {
			continue
		}
		out = append(out, c)
	}
	if !s.IsZero() {
		sort.SliceStable(out, func(i, j int) bool {
			less := out[i].Name < out[j].Name
			if s.Field == "email" {
				less = out[i].Email < out[j].Email
			}
			if s.Desc {
				return !less
			}
			return less
		})
	}
	return out, nil
}

type memProductRepo struct {
	products []*models.Product
}

func (m *memProductRepo) Save(_ context.Context, p *models.Product) error {
	m.products = append(m.products, p)
	return nil
}

func (m *memProductRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, crmdomain.ErrProductNotFound
}

func (m *memProductRepo) Find(_ context.Context, filter repositories.ProductFilter, s repositories.Sort) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(m.products))
	for _, p := range m.products {
		if filter.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.NameContains)) {
			continue
		}
		if filter.PriceMin != nil && p.Price.LessThan(*filter.PriceMin) {
			continue
		}
		if filter.PriceMax != nil && p.Price.GreaterThan(*filter.PriceMax) {
			continue
		}
		out = append(out, p)
	}
	if !s.IsZero() {
		sort.SliceStable(out, func(i, j int) bool {
			less := out[i].Name < out[j].Name
			if s.Field == "price" {
				less = out[i].Price.LessThan(out[j].Price)
			}
			if s.Desc {
				return !less
			}
			return less
		})
	}
	return out, nil
}

type memOrderRepo struct {
	orders []*models.Order
}

func (m *memOrderRepo) Save(_ context.Context, o *models.Order) error {
	m.orders = append(m.orders, o)
	return nil
}

func (m *memOrderRepo) Find(_ context.Context, _ repositories.OrderFilter, s repositories.Sort) ([]*models.Order, error) {
	out := append([]*models.Order(nil), m.orders...)
	if !s.IsZero() && s.Field == "total_amount" {
		sort.SliceStable(out, func(i, j int) bool {
			less := out[i].TotalAmount.LessThan(out[j].TotalAmount)
			if s.Desc {
				return !less
			}
			return less
		})
	}
	return out, nil
}

func (m *memOrderRepo) ProductsByOrderID(_ context.Context, orderID uuid.UUID) ([]*models.Product, error) {
	for _, o := range m.orders {
		if o.ID == orderID {
			return o.Products, nil
		}
	}
	return nil, nil
}

func newTestServices() (*appsvcs.Services, *memCustomerRepo, *memProductRepo, *memOrderRepo) {
	customers := &memCustomerRepo{}
	products := &memProductRepo{}
	orders := &memOrderRepo{}
	return &appsvcs.Services{
		Customer: appsvcs.NewCustomerService(customers),
		Product:  appsvcs.NewProductService(products),
		Order:    appsvcs.NewOrderService(orders, customers, products),
	}, customers, products, orders
}
