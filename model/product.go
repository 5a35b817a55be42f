package model

// Category groups products.
type Category struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   Timestamp `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt" yaml:"updatedAt"`
}

// CategoryInput is the body of category create and update calls.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Product is a catalog entry.
type Product struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Price       float64   `json:"price" yaml:"price"`
	CategoryID  string    `json:"categoryId" yaml:"categoryId"`
	Category    *Category `json:"category,omitempty" yaml:"category,omitempty"`
	Inventory   int       `json:"inventory" yaml:"inventory"`
	ImageURL    string    `json:"imageUrl" yaml:"imageUrl"`
	CreatedAt   Timestamp `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt" yaml:"updatedAt"`
}

// ProductFilters narrows a product listing.
type ProductFilters struct {
	CategoryIDs []string
	SearchQuery string
}

// ProductListResponse is one page of products.
type ProductListResponse struct {
	Products []Product `json:"products" yaml:"products"`
	Total    int       `json:"total" yaml:"total"`
	Page     int       `json:"page" yaml:"page"`
	Limit    int       `json:"limit" yaml:"limit"`
}
