package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dolcemiga/dolceweb/internal/platform/db"
	"github.com/dolcemiga/dolceweb/internal/shared"
)

// ErrNotFound indicates a missing order record.
var ErrNotFound = errors.New("order not found")

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, order Order) (int64, error)
	InsertLine(ctx context.Context, orderID int64, line OrderLine) error
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) error
	Delete(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

// List returns every order, newest first, lines attached.
func (r *repository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_name, customer_dni, customer_phone, total, status, payment_method, placed_at
		 FROM orders ORDER BY placed_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	index := make(map[int64]int)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Customer.Name, &o.Customer.DNI, &o.Customer.Phone, &o.Total, &o.Status, &o.PaymentMethod, &o.PlacedAt); err != nil {
			return nil, err
		}
		o.Total = shared.SafeFloat(o.Total)
		index[o.ID] = len(out)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.db.Query(ctx,
		`SELECT order_id, product_id, name, quantity, subtotal
		 FROM order_lines ORDER BY order_id, id`)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var orderID int64
		var line OrderLine
		if err := lineRows.Scan(&orderID, &line.ProductID, &line.Name, &line.Quantity, &line.Subtotal); err != nil {
			return nil, err
		}
		line.Subtotal = shared.SafeFloat(line.Subtotal)
		if i, ok := index[orderID]; ok {
			out[i].Lines = append(out[i].Lines, line)
		}
	}
	return out, lineRows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := r.db.QueryRow(ctx,
		`SELECT id, customer_name, customer_dni, customer_phone, total, status, payment_method, placed_at
		 FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.Customer.Name, &o.Customer.DNI, &o.Customer.Phone, &o.Total, &o.Status, &o.PaymentMethod, &o.PlacedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o.Total = shared.SafeFloat(o.Total)

	rows, err := r.db.Query(ctx,
		`SELECT product_id, name, quantity, subtotal FROM order_lines WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Quantity, &line.Subtotal); err != nil {
			return nil, err
		}
		line.Subtotal = shared.SafeFloat(line.Subtotal)
		o.Lines = append(o.Lines, line)
	}
	return &o, rows.Err()
}

func (r *repository) Create(ctx context.Context, order Order) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO orders (customer_name, customer_dni, customer_phone, total, status, payment_method, placed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		order.Customer.Name, order.Customer.DNI, order.Customer.Phone, order.Total, order.Status, order.PaymentMethod, order.PlacedAt,
	).Scan(&id)
	return id, err
}

func (r *repository) InsertLine(ctx context.Context, orderID int64, line OrderLine) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO order_lines (order_id, product_id, name, quantity, subtotal) VALUES ($1, $2, $3, $4, $5)`,
		orderID, line.ProductID, line.Name, line.Quantity, line.Subtotal,
	)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status OrderStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
