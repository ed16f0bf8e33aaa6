package products

import (
	"time"

	"github.com/dolcemiga/dolceweb/internal/shared"
)

// Stock thresholds. Below LowStockThreshold a product counts toward alert
// totals; below WarningThreshold it is only visually flagged.
const (
	LowStockThreshold = 10
	WarningThreshold  = 20
)

// Product represents a catalog entry.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsLowStock reports whether the product counts toward low-stock alerts.
func (p Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}

// IsWarningStock reports the display-only warning band.
func (p Product) IsWarningStock() bool {
	return p.Stock < WarningThreshold
}

// LineValue is the stock valuation of this product.
func (p Product) LineValue() float64 {
	return shared.SafeFloat(p.Price) * float64(p.Stock)
}
