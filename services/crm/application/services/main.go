package services

import (
	"github.com/ghuser/crmgraph/pkg/app"
	"github.com/ghuser/crmgraph/services/crm/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the CRM bounded
// context. It wires domain services with their infrastructure implementations.
type Services struct {
	Customer *CustomerService
	Product  *ProductService
	Order    *OrderService
}

// New wires all CRM application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	customers := postgres.NewCustomerRepository(a.Db, a.EventBus)
	products := postgres.NewProductRepository(a.Db)
	orders := postgres.NewOrderRepository(a.Db, a.EventBus)

	return &Services{
		Customer: NewCustomerService(customers),
		Product:  NewProductService(products),
		Order:    NewOrderService(orders, customers, products),
	}
}
