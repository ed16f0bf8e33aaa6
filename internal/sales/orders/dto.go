package orders

import "time"

// CreateOrderRequest carries a new order. Subtotals are computed server
// side from the catalog price, never trusted from the client.
type CreateOrderRequest struct {
	Customer      CustomerReq     `json:"customer" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=40"`
	PlacedAt      *time.Time      `json:"placed_at,omitempty"`
	Lines         []CreateLineReq `json:"lines" validate:"required,min=1,dive"`
}

// CustomerReq is the buyer block of a create payload.
type CustomerReq struct {
	Name  string  `json:"name" validate:"required,max=160"`
	DNI   *string `json:"dni,omitempty" validate:"omitempty,max=15"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// CreateLineReq is one requested item.
type CreateLineReq struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// UpdateStatusRequest carries a status change.
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}
