package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/storefront/errors"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Validator accumulates field errors from chained checks. The zero value is
// ready to use.
type Validator struct {
	fields []FieldError
}

func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *Validator) HasErrors() bool { return len(v.fields) > 0 }

func (v *Validator) Errors() []FieldError { return v.fields }

// Validate returns nil, or an invalid-input AppError whose message lists
// every failure in the order the checks ran.
func (v *Validator) Validate() error {
	if len(v.fields) == 0 {
		return nil
	}
	parts := make([]string, 0, len(v.fields))
	for _, f := range v.fields {
		parts = append(parts, f.String())
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", v.fields)
}

// Required fails when value is empty after trimming spaces.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

func (v *Validator) Min(field string, value, least int) *Validator {
	if value < least {
		v.AddError(field, fmt.Sprintf("must be at least %d", least))
	}
	return v
}

// OneOf fails unless value is exactly one of allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if !slices.Contains(allowed, value) {
		v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	}
	return v
}
