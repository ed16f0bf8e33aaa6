package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dolcemiga/dolceweb/internal/inventory/products"
	"github.com/dolcemiga/dolceweb/internal/sales/orders"
	"github.com/dolcemiga/dolceweb/internal/shared"
)

// OrderSource supplies the order snapshot a report reads.
type OrderSource interface {
	List(ctx context.Context) ([]orders.Order, error)
}

// ProductSource supplies the catalog snapshot.
type ProductSource interface {
	List(ctx context.Context, filters products.ListFilters) ([]products.Product, error)
}

// DailySummary feeds the dashboard footer. OrdersToday and PendingOrders
// are deliberately separate metrics; callers pick the one they mean.
type DailySummary struct {
	SalesToday     float64 `json:"sales_today"`
	OrdersToday    int     `json:"orders_today"`
	PendingOrders  int     `json:"pending_orders"`
	NewCustomers   int     `json:"new_customers"`
	LowStockAlerts int     `json:"low_stock_alerts"`
}

// MonthPoint is one month of the sales series.
type MonthPoint struct {
	Month  string  `json:"month"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// Dashboard aggregates everything the landing page shows from one snapshot
// pair.
type Dashboard struct {
	TotalProducts   int            `json:"total_products"`
	InventoryValue  float64        `json:"inventory_value"`
	Daily           DailySummary   `json:"daily"`
	MonthlySales    []MonthPoint   `json:"monthly_sales"`
	PopularProducts []ProductSales `json:"popular_products"`
	RecentSales     []orders.Order `json:"recent_sales"`
}

// Service assembles reports from repository snapshots. Generation is
// synchronous: each call reads an immutable snapshot, computes in memory
// and returns; nothing is persisted.
type Service struct {
	orderSource   OrderSource
	productSource ProductSource
	now           func() time.Time
}

// NewService constructs a Service.
func NewService(orderSource OrderSource, productSource ProductSource) *Service {
	return &Service{orderSource: orderSource, productSource: productSource, now: time.Now}
}

// SalesReport filters the order snapshot by the optional window and derives
// every sales statistic the report page and PDF show.
func (s *Service) SalesReport(ctx context.Context, from, to *time.Time) (SalesReport, error) {
	snapshot, err := s.orderSource.List(ctx)
	if err != nil {
		return SalesReport{}, fmt.Errorf("load orders: %w", err)
	}

	filtered := FilterByDateRange(snapshot, from, to)
	return SalesReport{
		From:           from,
		To:             to,
		Summary:        Summarize(filtered),
		TopProducts:    TopProducts(filtered, DefaultTopN),
		PaymentMethods: PaymentMethodTally(filtered),
		Orders:         filtered,
	}, nil
}

// InventoryReport snapshots the whole catalog and values it.
func (s *Service) InventoryReport(ctx context.Context) (InventoryReport, error) {
	snapshot, err := s.productSource.List(ctx, products.ListFilters{})
	if err != nil {
		return InventoryReport{}, fmt.Errorf("load products: %w", err)
	}
	return InventorySummary(snapshot), nil
}

// Dashboard computes the landing-page metrics from fresh snapshots.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	orderSnapshot, err := s.orderSource.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load orders: %w", err)
	}
	productSnapshot, err := s.productSource.List(ctx, products.ListFilters{})
	if err != nil {
		return Dashboard{}, fmt.Errorf("load products: %w", err)
	}

	inventory := InventorySummary(productSnapshot)
	today := s.now()

	d := Dashboard{
		TotalProducts:  len(productSnapshot),
		InventoryValue: inventory.TotalValue,
		Daily: DailySummary{
			LowStockAlerts: len(inventory.LowStock),
		},
		MonthlySales:    monthlySales(orderSnapshot),
		PopularProducts: TopProducts(orderSnapshot, DefaultTopN),
		RecentSales:     recentCompleted(orderSnapshot, 5),
	}

	seenCustomers := make(map[string]bool)
	for _, o := range orderSnapshot {
		if sameDay(o.PlacedAt, today) {
			d.Daily.OrdersToday++
			if o.Status == orders.StatusCompleted {
				d.Daily.SalesToday += shared.SafeFloat(o.Total)
			}
			if !seenCustomers[o.Customer.Name] {
				seenCustomers[o.Customer.Name] = true
				d.Daily.NewCustomers++
			}
		}
		if o.Status == orders.StatusPending {
			d.Daily.PendingOrders++
		}
	}
	return d, nil
}

// monthlySales groups completed order totals by calendar month, ascending.
func monthlySales(list []orders.Order) []MonthPoint {
	var series []MonthPoint
	index := make(map[string]int)
	for _, o := range list {
		if o.Status != orders.StatusCompleted {
			continue
		}
		key := o.PlacedAt.Format("2006-01")
		if i, ok := index[key]; ok {
			series[i].Sales += shared.SafeFloat(o.Total)
			series[i].Orders++
			continue
		}
		index[key] = len(series)
		series = append(series, MonthPoint{Month: key, Sales: shared.SafeFloat(o.Total), Orders: 1})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}

// recentCompleted returns the latest n completed orders. The snapshot is
// already newest-first.
func recentCompleted(list []orders.Order, n int) []orders.Order {
	out := make([]orders.Order, 0, n)
	for _, o := range list {
		if o.Status != orders.StatusCompleted {
			continue
		}
		out = append(out, o)
		if len(out) == n {
			break
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
