package validator_test

import (
	"net/http"
	"testing"

	pkgvalidator "github.com/ghuser/crmgraph/pkg/validator"
)

type customerInput struct {
	Name  string `json:"name"  validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone" validate:"omitempty,phone"`
}

func TestValidate_valid(t *testing.T) {
	s := customerInput{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: "+12345678",
	}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := customerInput{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestValidate_emptyPhoneAllowed(t *testing.T) {
	s := customerInput{Name: "Bob", Email: "bob@example.com"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error for empty phone, got %v", err)
	}
}

func TestValidate_badPhone(t *testing.T) {
	s := customerInput{Name: "Carol", Email: "carol@example.com", Phone: "abc"}
	err := pkgvalidator.Validate(&s)
	if err == nil {
		t.Fatal("expected validation error for phone=abc")
	}
	m := pkgvalidator.FormatValidationErrors(err)
	if m["phone"] != "Invalid phone format" {
		t.Errorf("unexpected phone message: %q", m["phone"])
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+12345678", true},
		{"1234567", true},
		{"123456789012345", true},
		{"123-456-7890", true},
		{"abc", false},
		{"12-34", false},
		{"123456", false},            // six digits — below minimum
		{"+1234567890123456", false}, // sixteen digits — above maximum
		{"123-45-7890", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := pkgvalidator.ValidPhone(tt.phone); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := customerInput{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["name"] != "This field is required" {
		t.Errorf("unexpected name message: %q", m["name"])
	}
	if m["email"] != "This field is required" {
		t.Errorf("unexpected email message: %q", m["email"])
	}
}

func TestFormatValidationErrors_email(t *testing.T) {
	s := customerInput{Name: "ok", Email: "not-an-email"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["email"] != "Must be a valid email address" {
		t.Errorf("unexpected email message: %q", m["email"])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}
