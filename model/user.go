package model

// User is an authenticated storefront account.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Email     string    `json:"email" yaml:"email"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt Timestamp `json:"createdAt" yaml:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt" yaml:"updatedAt"`
}

// Credentials is the body of register and login calls.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User      User   `json:"user" yaml:"user"`
	Token     string `json:"token" yaml:"token"`
	ExpiresIn int64  `json:"expiresIn" yaml:"expiresIn"`
}
