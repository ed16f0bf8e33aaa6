package products

import "github.com/dolcemiga/dolceweb/internal/shared"

// ProductForm carries create/update payloads. Price rides on shared.Number
// so malformed numeric input degrades to zero instead of failing decode.
type ProductForm struct {
	Name        string        `json:"name" validate:"required,max=160"`
	Description string        `json:"description" validate:"max=2000"`
	Category    string        `json:"category" validate:"required,max=80"`
	Price       shared.Number `json:"price" validate:"gte=0"`
	Stock       int           `json:"stock" validate:"gte=0"`
	ImageURL    string        `json:"image_url" validate:"omitempty,url"`
}

// ListFilters narrows the product listing.
type ListFilters struct {
	Search   string
	Category string
}
