package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dolcemiga/dolceweb/internal/inventory/products"
	"github.com/dolcemiga/dolceweb/internal/shared"
)

var (
	// ErrInvalidStatus indicates a disallowed status transition.
	ErrInvalidStatus = errors.New("invalid status transition")
	// ErrUnknownStatus indicates a status value outside the enum.
	ErrUnknownStatus = errors.New("unknown status")
)

// CatalogReader is the slice of the products repository order creation needs.
type CatalogReader interface {
	Get(ctx context.Context, id int64) (products.Product, error)
}

// Service wraps order business rules.
type Service struct {
	repo    Repository
	catalog CatalogReader
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, catalog CatalogReader) *Service {
	return &Service{repo: repo, catalog: catalog, now: time.Now}
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

// Get returns one order with its lines.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// Create prices each requested line from the catalog, derives the total as
// the sum of the subtotals and stores the order as pending.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	placedAt := s.now()
	if req.PlacedAt != nil {
		placedAt = *req.PlacedAt
	}

	order := Order{
		Customer: Customer{
			Name:  req.Customer.Name,
			DNI:   req.Customer.DNI,
			Phone: req.Customer.Phone,
		},
		Status:        StatusPending,
		PaymentMethod: req.PaymentMethod,
		PlacedAt:      placedAt,
	}

	var total float64
	for _, lineReq := range req.Lines {
		product, err := s.catalog.Get(ctx, lineReq.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, fmt.Errorf("product %d: %w", lineReq.ProductID, shared.ErrNotFound)
			}
			return nil, fmt.Errorf("verify product %d: %w", lineReq.ProductID, err)
		}
		subtotal := shared.SafeFloat(product.Price) * float64(lineReq.Quantity)
		order.Lines = append(order.Lines, OrderLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  lineReq.Quantity,
			Subtotal:  subtotal,
		})
		total += subtotal
	}
	order.Total = total

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		order.ID = id
		for _, line := range order.Lines {
			if err := repo.InsertLine(ctx, id, line); err != nil {
				return fmt.Errorf("insert line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus applies a lifecycle transition. Terminal states reject every
// change; clients refresh their listing after a successful write instead of
// merging in place.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next OrderStatus) error {
	if !next.Valid() {
		return ErrUnknownStatus
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransitionTo(next) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, next)
}

// Delete removes an order and its lines.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
