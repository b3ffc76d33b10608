// Package services contains stateless domain services for the CRM bounded
// context. Domain services enforce business rules that operate purely on
// domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	crmdomain "github.com/ghuser/crmgraph/services/crm/domain"
	"github.com/ghuser/crmgraph/services/crm/domain/models"
)

// phonePattern accepts international digits (optional +, 7-15 digits) or the
// US dashed form 123-456-7890.
var phonePattern = regexp.MustCompile(`^(\+?\d{7,15}|\d{3}-\d{3}-\d{4})$`)

// ValidatePhone enforces the accepted phone format for a non-empty phone.
// The empty string passes — phone is an optional field.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return &crmdomain.InvalidPhoneError{Phone: phone}
	}
	return nil
}

// ValidateCustomerForCreation performs validation on a fully-constructed
// Customer aggregate before it is persisted. Email uniqueness is not checked
// here — it requires store access and belongs to the application layer.
func ValidateCustomerForCreation(c *models.Customer) error {
	if c == nil {
		return fmt.Errorf("%w: customer cannot be nil", crmdomain.ErrInvalidInput)
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", crmdomain.ErrInvalidInput)
	}

	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: email must not be empty", crmdomain.ErrInvalidInput)
	}

	if err := ValidatePhone(c.Phone); err != nil {
		return err
	}

	if c.ID == uuid.Nil {
		return fmt.Errorf("%w: id must be set", crmdomain.ErrInvalidInput)
	}

	return nil
}
