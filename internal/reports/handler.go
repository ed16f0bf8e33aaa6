package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dolcemiga/dolceweb/internal/platform/httpx"
	"github.com/dolcemiga/dolceweb/internal/sales/orders"
)

// DocumentRenderer is the PDF surface the handler drives. It returns the
// artifact bytes and the deterministic filename.
type DocumentRenderer interface {
	RenderSalesReport(ctx context.Context, report SalesReport) ([]byte, string, error)
	RenderInventoryReport(ctx context.Context, report InventoryReport) ([]byte, string, error)
	RenderReceipt(ctx context.Context, order *orders.Order) ([]byte, string, error)
}

// OrderGetter loads the single raw order a receipt formats.
type OrderGetter interface {
	Get(ctx context.Context, id int64) (*orders.Order, error)
}

// Handler exposes report statistics and PDF downloads.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	renderer DocumentRenderer
	getter   OrderGetter
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, renderer DocumentRenderer, getter OrderGetter) *Handler {
	return &Handler{logger: logger, service: service, renderer: renderer, getter: getter}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/reportes/ventas", h.SalesStats)
	r.Get("/reportes/ventas/pdf", h.SalesPDF)
	r.Get("/reportes/inventario", h.InventoryStats)
	r.Get("/reportes/inventario/pdf", h.InventoryPDF)
	r.Get("/pedidos/{id}/comprobante", h.ReceiptPDF)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("build dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) SalesStats(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseWindow(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	report, err := h.service.SalesReport(r.Context(), from, to)
	if err != nil {
		h.logger.Error("build sales report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) SalesPDF(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseWindow(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	report, err := h.service.SalesReport(r.Context(), from, to)
	if err != nil {
		h.logger.Error("build sales report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	pdf, filename, err := h.renderer.RenderSalesReport(r.Context(), report)
	if err != nil {
		h.logger.Error("render sales pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Document Generation Failed", "no se pudo generar el reporte")
		return
	}
	writePDF(w, pdf, filename)
}

func (h *Handler) InventoryStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.InventoryReport(r.Context())
	if err != nil {
		h.logger.Error("build inventory report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) InventoryPDF(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.InventoryReport(r.Context())
	if err != nil {
		h.logger.Error("build inventory report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	pdf, filename, err := h.renderer.RenderInventoryReport(r.Context(), report)
	if err != nil {
		h.logger.Error("render inventory pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Document Generation Failed", "no se pudo generar el reporte")
		return
	}
	writePDF(w, pdf, filename)
}

func (h *Handler) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	order, err := h.getter.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("load order for receipt", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	pdf, filename, err := h.renderer.RenderReceipt(r.Context(), order)
	if err != nil {
		h.logger.Error("render receipt pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Document Generation Failed", "no se pudo generar el comprobante")
		return
	}
	writePDF(w, pdf, filename)
}

// parseWindow reads the optional from/to query bounds as YYYY-MM-DD.
func parseWindow(r *http.Request) (*time.Time, *time.Time, error) {
	parse := func(name string) (*time.Time, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s date: %s", name, raw)
		}
		return &t, nil
	}
	from, err := parse("from")
	if err != nil {
		return nil, nil, err
	}
	to, err := parse("to")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func writePDF(w http.ResponseWriter, pdf []byte, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
