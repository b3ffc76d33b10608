package graph

import (
	"errors"
	"fmt"

	"github.com/ghuser/crmgraph/services/crm/domain"
)

const (
	msgCustomerCreated = "Customer created successfully"
	msgProductCreated  = "Product created successfully"
	msgOrderCreated    = "Order created successfully"
)

// businessRules is the closed set of rule violations that mutations report
// through the payload envelope. Anything outside it is an operational fault
// and surfaces as a query error instead.
var businessRules = []error{
	domain.ErrEmailExists,
	domain.ErrInvalidPhone,
	domain.ErrInvalidPrice,
	domain.ErrNonPositivePrice,
	domain.ErrNegativeStock,
	domain.ErrCustomerNotFound,
	domain.ErrProductNotFound,
	domain.ErrEmptyOrder,
	domain.ErrInvalidInput,
}

func isBusinessRule(err error) bool {
	for _, rule := range businessRules {
		if errors.Is(err, rule) {
			return true
		}
	}
	return false
}

// messageFor renders a rule violation as the stable, client-facing message
// for that kind of failure.
func messageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, domain.ErrInvalidPhone):
		return "Invalid phone format"
	case errors.Is(err, domain.ErrNonPositivePrice):
		return "Price must be a positive value."
	case errors.Is(err, domain.ErrNegativeStock):
		return "Stock cannot be negative."
	case errors.Is(err, domain.ErrInvalidPrice):
		return "Invalid price format"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "Invalid customer ID"
	case errors.Is(err, domain.ErrEmptyOrder):
		return "At least one product must be selected"
	case errors.Is(err, domain.ErrProductNotFound):
		var pnf *domain.ProductNotFoundError
		if errors.As(err, &pnf) {
			return fmt.Sprintf("Invalid product ID: %s", pnf.ID)
		}
		return "Invalid product ID"
	default:
		return err.Error()
	}
}

// bulkMessageFor is messageFor with the offending value appended, so a batch
// result identifies which entry each failure belongs to.
func bulkMessageFor(err error) string {
	var dup *domain.EmailExistsError
	if errors.As(err, &dup) {
		return fmt.Sprintf("Email already exists: %s", dup.Email)
	}
	var phone *domain.InvalidPhoneError
	if errors.As(err, &phone) {
		return fmt.Sprintf("Invalid phone format: %s", phone.Phone)
	}
	return messageFor(err)
}
