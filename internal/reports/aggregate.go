// Package reports derives summary statistics from order and catalog
// snapshots and feeds the PDF exporter. Every function here is pure: the
// caller supplies the snapshot, nothing touches the network.
package reports

import (
	"sort"
	"time"

	"github.com/dolcemiga/dolceweb/internal/inventory/products"
	"github.com/dolcemiga/dolceweb/internal/sales/orders"
	"github.com/dolcemiga/dolceweb/internal/shared"
)

// DefaultTopN is the ranked-list length when the caller does not choose one.
const DefaultTopN = 5

// Summary holds the headline figures for a filtered order set.
type Summary struct {
	TotalSales     float64 `json:"total_sales"`
	TotalOrders    int     `json:"total_orders"`
	CompletedCount int     `json:"completed_count"`
	PendingCount   int     `json:"pending_count"`
}

// ProductSales is one entry of the ranked top-products list.
type ProductSales struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// MethodCount is one payment-method tally entry. A slice keeps the
// first-occurrence order deterministic, unlike a map.
type MethodCount struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

// SalesReport is the ephemeral input of the sales PDF, built per request.
type SalesReport struct {
	From           *time.Time     `json:"from,omitempty"`
	To             *time.Time     `json:"to,omitempty"`
	Summary        Summary        `json:"summary"`
	TopProducts    []ProductSales `json:"top_products"`
	PaymentMethods []MethodCount  `json:"payment_methods"`
	Orders         []orders.Order `json:"orders"`
}

// InventoryReport is the ephemeral input of the inventory PDF.
type InventoryReport struct {
	Products   []products.Product `json:"products"`
	TotalValue float64            `json:"total_value"`
	TotalStock int                `json:"total_stock"`
	LowStock   []products.Product `json:"low_stock"`
}

// FilterByDateRange keeps orders placed within [start 00:00:00, end
// 23:59:59.999] inclusive. A missing bound returns the input unchanged; an
// inverted range yields an empty result rather than an error. Filtering an
// already-filtered list with the same bounds is a no-op.
func FilterByDateRange(list []orders.Order, start, end *time.Time) []orders.Order {
	if start == nil || end == nil {
		return list
	}
	from := startOfDay(*start)
	to := endOfDay(*end)

	out := make([]orders.Order, 0, len(list))
	for _, o := range list {
		if o.PlacedAt.Before(from) || o.PlacedAt.After(to) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Summarize partitions the orders by status and totals their amounts.
// Totals pass through the sanitization boundary, so a malformed amount
// contributes zero instead of poisoning the sum.
func Summarize(list []orders.Order) Summary {
	s := Summary{TotalOrders: len(list)}
	for _, o := range list {
		s.TotalSales += shared.SafeFloat(o.Total)
		switch o.Status {
		case orders.StatusCompleted:
			s.CompletedCount++
		case orders.StatusPending:
			s.PendingCount++
		}
	}
	return s
}

// TopProducts flattens all order lines, groups them by product and ranks by
// summed quantity. The sort is stable: on a quantity tie, the product seen
// first in the input keeps the higher rank.
func TopProducts(list []orders.Order, n int) []ProductSales {
	if n <= 0 {
		n = DefaultTopN
	}

	var ranked []ProductSales
	index := make(map[int64]int)
	for _, o := range list {
		for _, line := range o.Lines {
			if i, ok := index[line.ProductID]; ok {
				ranked[i].Quantity += line.Quantity
				ranked[i].Total += shared.SafeFloat(line.Subtotal)
				continue
			}
			index[line.ProductID] = len(ranked)
			ranked = append(ranked, ProductSales{
				ProductID: line.ProductID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				Total:     shared.SafeFloat(line.Subtotal),
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// PaymentMethodTally counts orders per payment method, preserving the order
// in which each method first appears. The counts always sum to len(list).
func PaymentMethodTally(list []orders.Order) []MethodCount {
	var tally []MethodCount
	index := make(map[string]int)
	for _, o := range list {
		if i, ok := index[o.PaymentMethod]; ok {
			tally[i].Count++
			continue
		}
		index[o.PaymentMethod] = len(tally)
		tally = append(tally, MethodCount{Method: o.PaymentMethod, Count: 1})
	}
	return tally
}

// InventorySummary values the catalog snapshot and collects the low-stock
// subset in catalog order.
func InventorySummary(list []products.Product) InventoryReport {
	report := InventoryReport{Products: list}
	for _, p := range list {
		report.TotalValue += shared.SafeFloat(p.Price) * float64(p.Stock)
		report.TotalStock += p.Stock
		if p.IsLowStock() {
			report.LowStock = append(report.LowStock, p)
		}
	}
	return report
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
