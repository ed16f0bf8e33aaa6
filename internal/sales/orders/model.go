package orders

import "time"

// OrderStatus enumerates the three valid order states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pendiente"
	StatusCompleted OrderStatus = "completado"
	StatusCancelled OrderStatus = "cancelado"
)

// Valid reports whether the status is one of the three known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the lifecycle: pending orders may complete or
// cancel; completed and cancelled orders are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == StatusPending && (next == StatusCompleted || next == StatusCancelled)
}

// Customer is the buyer reference embedded in an order.
type Customer struct {
	Name  string  `json:"name"`
	DNI   *string `json:"dni,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// OrderLine is one purchased item. Subtotal is quantity times the unit
// price captured at order time.
type OrderLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Order represents a customer purchase. Total always equals the sum of the
// line subtotals; the service recomputes it on write.
type Order struct {
	ID            int64       `json:"id"`
	Customer      Customer    `json:"customer"`
	Lines         []OrderLine `json:"lines"`
	Total         float64     `json:"total"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	PlacedAt      time.Time   `json:"placed_at"`
}
