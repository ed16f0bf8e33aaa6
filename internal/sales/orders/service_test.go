package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolcemiga/dolceweb/internal/inventory/products"
	"github.com/dolcemiga/dolceweb/internal/shared"
)

type stubCatalog struct {
	items map[int64]products.Product
}

func (c *stubCatalog) Get(_ context.Context, id int64) (products.Product, error) {
	p, ok := c.items[id]
	if !ok {
		return products.Product{}, shared.ErrNotFound
	}
	return p, nil
}

type memRepository struct {
	orders map[int64]*Order
	nextID int64
}

func newMemRepository() *memRepository {
	return &memRepository{orders: make(map[int64]*Order), nextID: 1}
}

func (r *memRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memRepository) List(context.Context) ([]Order, error) {
	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *memRepository) Get(_ context.Context, id int64) (*Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *memRepository) Create(_ context.Context, order Order) (int64, error) {
	order.ID = r.nextID
	order.Lines = nil
	r.orders[order.ID] = &order
	r.nextID++
	return order.ID, nil
}

func (r *memRepository) InsertLine(_ context.Context, orderID int64, line OrderLine) error {
	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Lines = append(o.Lines, line)
	return nil
}

func (r *memRepository) UpdateStatus(_ context.Context, id int64, status OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *memRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func newTestService(repo Repository, catalog CatalogReader) *Service {
	svc := NewService(repo, catalog)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestServiceCreatePricesFromCatalog(t *testing.T) {
	catalog := &stubCatalog{items: map[int64]products.Product{
		1: {ID: 1, Name: "Torta de Chocolate", Price: 45.5, Stock: 8},
		2: {ID: 2, Name: "Croissant", Price: 4.5, Stock: 30},
	}}
	repo := newMemRepository()
	svc := newTestService(repo, catalog)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		Customer:      CustomerReq{Name: "María López"},
		PaymentMethod: "efectivo",
		Lines: []CreateLineReq{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, 45.5, order.Lines[0].Subtotal)
	assert.Equal(t, 18.0, order.Lines[1].Subtotal)
	assert.Equal(t, 63.5, order.Total)

	// Total always matches the sum of the line subtotals.
	var sum float64
	for _, line := range order.Lines {
		sum += line.Subtotal
	}
	assert.Equal(t, order.Total, sum)

	stored, err := repo.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Lines, 2)
	assert.Equal(t, "Torta de Chocolate", stored.Lines[0].Name)
}

func TestServiceCreateUnknownProduct(t *testing.T) {
	svc := newTestService(newMemRepository(), &stubCatalog{items: map[int64]products.Product{}})

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Customer:      CustomerReq{Name: "Ana"},
		PaymentMethod: "yape",
		Lines:         []CreateLineReq{{ProductID: 99, Quantity: 1}},
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceUpdateStatus(t *testing.T) {
	seed := func(t *testing.T, status OrderStatus) (*Service, int64) {
		t.Helper()
		repo := newMemRepository()
		id, err := repo.Create(context.Background(), Order{
			Customer: Customer{Name: "Ana"},
			Status:   status,
		})
		require.NoError(t, err)
		return newTestService(repo, &stubCatalog{}), id
	}

	cases := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		wantErr error
	}{
		{"pending to completed", StatusPending, StatusCompleted, nil},
		{"pending to cancelled", StatusPending, StatusCancelled, nil},
		{"completed is terminal", StatusCompleted, StatusPending, ErrInvalidStatus},
		{"completed cannot cancel", StatusCompleted, StatusCancelled, ErrInvalidStatus},
		{"cancelled is terminal", StatusCancelled, StatusCompleted, ErrInvalidStatus},
		{"unknown status rejected", StatusPending, OrderStatus("enviado"), ErrUnknownStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, id := seed(t, tc.from)
			err := svc.UpdateStatus(context.Background(), id, tc.to)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			got, err := svc.Get(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tc.to, got.Status)
		})
	}
}

func TestServiceUpdateStatusMissingOrder(t *testing.T) {
	svc := newTestService(newMemRepository(), &stubCatalog{})
	err := svc.UpdateStatus(context.Background(), 42, StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}
