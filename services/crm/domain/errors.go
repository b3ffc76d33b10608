package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the CRM domain. Use errors.Is() to check these.
// Mutations recover every one of them into a {success:false, message}
// envelope; anything else propagates to the transport as a hard fault.
var (
	// ErrCustomerNotFound indicates the referenced customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProductNotFound indicates a referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrEmailExists indicates a customer with the same email already exists.
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidPhone indicates the phone number violates the accepted format.
	ErrInvalidPhone = errors.New("invalid phone format")

	// ErrInvalidPrice indicates the price could not be parsed as a decimal.
	ErrInvalidPrice = errors.New("invalid price format")

	// ErrNonPositivePrice indicates a price of zero or below.
	ErrNonPositivePrice = errors.New("price must be positive")

	// ErrNegativeStock indicates a stock quantity below zero.
	ErrNegativeStock = errors.New("stock cannot be negative")

	// ErrEmptyOrder indicates an order with no products.
	ErrEmptyOrder = errors.New("order must contain at least one product")

	// ErrInvalidInput indicates a structurally invalid input field.
	ErrInvalidInput = errors.New("invalid input")
)

// EmailExistsError carries the duplicate email so bulk operations can report
// which record collided. errors.Is(err, ErrEmailExists) matches it.
type EmailExistsError struct {
	Email string
}

func (e *EmailExistsError) Error() string {
	return fmt.Sprintf("email already exists: %s", e.Email)
}

func (e *EmailExistsError) Is(target error) bool {
	return target == ErrEmailExists
}

// InvalidPhoneError carries the offending phone number.
// errors.Is(err, ErrInvalidPhone) matches it.
type InvalidPhoneError struct {
	Phone string
}

func (e *InvalidPhoneError) Error() string {
	return fmt.Sprintf("invalid phone format: %s", e.Phone)
}

func (e *InvalidPhoneError) Is(target error) bool {
	return target == ErrInvalidPhone
}

// ProductNotFoundError carries the unresolvable product id as given by the
// caller. errors.Is(err, ErrProductNotFound) matches it.
type ProductNotFoundError struct {
	ID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
