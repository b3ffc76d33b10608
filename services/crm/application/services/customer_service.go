package services

import (
	"context"
	"fmt"
	"strings"

	pkgvalidator "github.com/ghuser/crmgraph/pkg/validator"
	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
	"github.com/ghuser/crmgraph/services/crm/domain/repositories"
	domainsvcs "github.com/ghuser/crmgraph/services/crm/domain/services"
)

// CreateCustomerInput carries the fields for a single customer creation.
type CreateCustomerInput struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone" validate:"omitempty,phone"`
}

// CustomerService orchestrates creation and retrieval of Customers.
// Event publishing is handled by the repository layer within the save
// transaction.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService returns a CustomerService wired with the given repository.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// Create validates and persists one Customer. All business-rule violations
// come back as domain errors the transport recovers into a failure envelope;
// the store gains no record on failure.
func (s *CustomerService) Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	if err := validateCustomerInput(in); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, &crmdomain.EmailExistsError{Email: in.Email}
	}

	customer := models.NewCustomer(in.Name, in.Email, in.Phone)
	if err := domainsvcs.ValidateCustomerForCreation(customer); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// BulkCreate processes inputs independently in order; a failed record never
// aborts the rest. It returns the customers that were created and the error
// for each record that was not, in encounter order. Duplicate emails inside
// the same batch are rejected like duplicates against persisted state.
func (s *CustomerService) BulkCreate(ctx context.Context, inputs []CreateCustomerInput) ([]*models.Customer, []error) {
	created := make([]*models.Customer, 0, len(inputs))
	var failures []error

	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.Email]; dup {
			failures = append(failures, &crmdomain.EmailExistsError{Email: in.Email})
			continue
		}

		customer, err := s.Create(ctx, in)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		seen[in.Email] = struct{}{}
		created = append(created, customer)
	}

	return created, failures
}

// List returns customers matching filter, ordered per orderBy ("" for the
// store's default order, "-field" for descending).
func (s *CustomerService) List(ctx context.Context, filter repositories.CustomerFilter, orderBy string) ([]*models.Customer, error) {
	customers, err := s.repo.Find(ctx, filter, repositories.ParseSort(orderBy))
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// validateCustomerInput maps structural validation failures to domain errors.
// A bad phone surfaces as InvalidPhoneError so the envelope message stays
// stable; everything else becomes ErrInvalidInput.
func validateCustomerInput(in CreateCustomerInput) error {
	err := pkgvalidator.Validate(&in)
	if err == nil {
		return nil
	}

	fields := pkgvalidator.FormatValidationErrors(err)
	if _, bad := fields["phone"]; bad {
		return &crmdomain.InvalidPhoneError{Phone: in.Phone}
	}

	msgs := make([]string, 0, len(fields))
	for field, msg := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return fmt.Errorf("%w: %s", crmdomain.ErrInvalidInput, strings.Join(msgs, "; "))
}
