package reports

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolcemiga/dolceweb/internal/sales/orders"
)

type stubRenderer struct {
	err error
}

func (r *stubRenderer) RenderSalesReport(context.Context, SalesReport) ([]byte, string, error) {
	if r.err != nil {
		return nil, "", r.err
	}
	return []byte("PDF"), "Reporte_Ventas_General.pdf", nil
}

func (r *stubRenderer) RenderInventoryReport(context.Context, InventoryReport) ([]byte, string, error) {
	if r.err != nil {
		return nil, "", r.err
	}
	return []byte("PDF"), "Inventario_DolceMiga_2024-03-20.pdf", nil
}

func (r *stubRenderer) RenderReceipt(_ context.Context, order *orders.Order) ([]byte, string, error) {
	if r.err != nil {
		return nil, "", r.err
	}
	return []byte("PDF"), "Comprobante_Pedido_1.pdf", nil
}

type stubGetter struct {
	order *orders.Order
}

func (g *stubGetter) Get(context.Context, int64) (*orders.Order, error) {
	if g.order == nil {
		return nil, orders.ErrNotFound
	}
	return g.order, nil
}

func newTestHandler(renderer DocumentRenderer, getter OrderGetter, source *stubOrderSource) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := fixedService(source, &stubProductSource{})
	h := NewHandler(logger, svc, renderer, getter)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestHandlerSalesStats(t *testing.T) {
	source := &stubOrderSource{orders: []orders.Order{
		{
			ID: 1, Total: 100, Status: orders.StatusCompleted, PaymentMethod: "efectivo",
			PlacedAt: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		},
	}}
	srv := newTestHandler(&stubRenderer{}, &stubGetter{}, source)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reportes/ventas?from=2024-01-01&to=2024-01-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var report SalesReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 100.0, report.Summary.TotalSales)
	assert.Equal(t, 1, report.Summary.TotalOrders)
}

func TestHandlerSalesStatsBadDate(t *testing.T) {
	srv := newTestHandler(&stubRenderer{}, &stubGetter{}, &stubOrderSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reportes/ventas?from=05-01-2024", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid from date")
}

func TestHandlerSalesPDF(t *testing.T) {
	srv := newTestHandler(&stubRenderer{}, &stubGetter{}, &stubOrderSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reportes/ventas/pdf", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Reporte_Ventas_General.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PDF", rec.Body.String())
}

func TestHandlerSalesPDFRendererDown(t *testing.T) {
	srv := newTestHandler(&stubRenderer{err: errors.New("gotenberg unreachable")}, &stubGetter{}, &stubOrderSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reportes/ventas/pdf", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Document Generation Failed")
}

func TestHandlerInventoryPDF(t *testing.T) {
	srv := newTestHandler(&stubRenderer{}, &stubGetter{}, &stubOrderSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reportes/inventario/pdf", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Inventario_DolceMiga_2024-03-20.pdf"`, rec.Header().Get("Content-Disposition"))
}

func TestHandlerReceiptPDF(t *testing.T) {
	getter := &stubGetter{order: &orders.Order{ID: 1, Customer: orders.Customer{Name: "Ana"}}}
	srv := newTestHandler(&stubRenderer{}, getter, &stubOrderSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pedidos/1/comprobante", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Comprobante_Pedido_1.pdf"`, rec.Header().Get("Content-Disposition"))
}

func TestHandlerReceiptPDFNotFound(t *testing.T) {
	srv := newTestHandler(&stubRenderer{}, &stubGetter{}, &stubOrderSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pedidos/99/comprobante", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerReceiptPDFBadID(t *testing.T) {
	srv := newTestHandler(&stubRenderer{}, &stubGetter{}, &stubOrderSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pedidos/abc/comprobante", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
