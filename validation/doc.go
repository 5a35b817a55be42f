// Package validation checks payloads and configuration before they leave
// the process.
//
// Struct tag validation uses go-playground/validator with JSON field names
// in messages:
//
//	type Credentials struct {
//	    Email    string `json:"email" validate:"required,email"`
//	    Password string `json:"password" validate:"required"`
//	}
//	err := validation.Validate(creds)
//
// Programmatic checks collect errors for values that have no struct:
//
//	err := validation.New().Min("quantity", qty, 1).Validate()
package validation
