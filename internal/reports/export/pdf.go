// Package export renders report data into the three fixed PDF layouts via
// Gotenberg. Layout is carried by embedded HTML templates; this package
// only guarantees content and order, not pixels.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dolcemiga/dolceweb/internal/reports"
	"github.com/dolcemiga/dolceweb/internal/sales/orders"
	"github.com/dolcemiga/dolceweb/internal/shared"
	"github.com/dolcemiga/dolceweb/web"
)

// Fixed business identity printed on every document.
const (
	BusinessName    = "Dolce Miga"
	BusinessRUC     = "RUC: 20123456789"
	BusinessAddress = "Dirección: Av. Siempre Viva 123"
)

// The sales report renders at most this many top-product rows no matter
// how many the aggregator supplies.
const maxTopProductRows = 10

type paperSize struct {
	width  string
	height string
	margin string
}

// A4 for the two reports, A6 for the compact receipt.
var (
	paperReport  = paperSize{width: "8.27", height: "11.69", margin: "0.4"}
	paperReceipt = paperSize{width: "4.13", height: "5.83", margin: "0.2"}
)

// PDFExporter wraps Gotenberg interactions for document generation.
type PDFExporter struct {
	Endpoint  string
	Client    *http.Client
	templates *template.Template
	now       func() time.Time
}

// NewPDFExporter parses the embedded document templates.
func NewPDFExporter(endpoint string, client *http.Client) (*PDFExporter, error) {
	funcMap := template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("S/. %.2f", shared.SafeFloat(v))
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		"deref": func(s *string) string {
			if s == nil || *s == "" {
				return "-"
			}
			return *s
		},
		"statusClass": func(s orders.OrderStatus) string {
			switch s {
			case orders.StatusPending:
				return "estado-pendiente"
			case orders.StatusCompleted:
				return "estado-completado"
			}
			return ""
		},
	}

	tpl, err := template.New("reports").Funcs(funcMap).ParseFS(
		web.Templates, "templates/reports/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}

	return &PDFExporter{
		Endpoint:  endpoint,
		Client:    client,
		templates: tpl,
		now:       time.Now,
	}, nil
}

type salesPayload struct {
	GeneratedAt time.Time
	Period      string
	Report      reports.SalesReport
	TopProducts []reports.ProductSales
}

type inventoryPayload struct {
	GeneratedAt time.Time
	Report      reports.InventoryReport
}

type receiptPayload struct {
	Order *orders.Order
}

// RenderSalesReport produces the sales PDF and its filename.
func (p *PDFExporter) RenderSalesReport(ctx context.Context, report reports.SalesReport) ([]byte, string, error) {
	top := report.TopProducts
	if len(top) > maxTopProductRows {
		top = top[:maxTopProductRows]
	}
	payload := salesPayload{
		GeneratedAt: p.timestamp(),
		Period:      periodLine(report.From, report.To),
		Report:      report,
		TopProducts: top,
	}
	pdf, err := p.render(ctx, "sales_report_pdf.html", payload, paperReport)
	if err != nil {
		return nil, "", err
	}
	return pdf, SalesReportFilename(report.From), nil
}

// RenderInventoryReport produces the inventory PDF and its filename.
func (p *PDFExporter) RenderInventoryReport(ctx context.Context, report reports.InventoryReport) ([]byte, string, error) {
	payload := inventoryPayload{GeneratedAt: p.timestamp(), Report: report}
	pdf, err := p.render(ctx, "inventory_report_pdf.html", payload, paperReport)
	if err != nil {
		return nil, "", err
	}
	return pdf, InventoryReportFilename(p.timestamp()), nil
}

// RenderReceipt produces the compact single-order receipt. It takes the raw
// order and performs no aggregation.
func (p *PDFExporter) RenderReceipt(ctx context.Context, order *orders.Order) ([]byte, string, error) {
	if order == nil {
		return nil, "", fmt.Errorf("receipt: order required")
	}
	pdf, err := p.render(ctx, "receipt_pdf.html", receiptPayload{Order: order}, paperReceipt)
	if err != nil {
		return nil, "", err
	}
	return pdf, ReceiptFilename(order.ID), nil
}

// SalesReportFilename encodes the window start, falling back to the literal
// General token when no start date was supplied.
func SalesReportFilename(from *time.Time) string {
	suffix := "General"
	if from != nil {
		suffix = from.Format("2006-01-02")
	}
	return fmt.Sprintf("Reporte_Ventas_%s.pdf", suffix)
}

// InventoryReportFilename encodes the generation date.
func InventoryReportFilename(at time.Time) string {
	return fmt.Sprintf("Inventario_DolceMiga_%s.pdf", at.Format("2006-01-02"))
}

// ReceiptFilename encodes the order id.
func ReceiptFilename(orderID int64) string {
	return fmt.Sprintf("Comprobante_Pedido_%d.pdf", orderID)
}

// Ping checks whether the remote Gotenberg service is reachable.
func (p *PDFExporter) Ping(ctx context.Context) error {
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

func (p *PDFExporter) timestamp() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

func periodLine(from, to *time.Time) string {
	if from == nil || to == nil {
		return "General"
	}
	return fmt.Sprintf("%s al %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
}

func (p *PDFExporter) render(ctx context.Context, templateName string, payload any, paper paperSize) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialised")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := p.buildHTML(templateName, payload)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "document.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"paperWidth":   paper.width,
		"paperHeight":  paper.height,
		"marginTop":    paper.margin,
		"marginBottom": paper.margin,
		"marginLeft":   paper.margin,
		"marginRight":  paper.margin,
		"waitDelay":    "100",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	return io.ReadAll(resp.Body)
}

func (p *PDFExporter) buildHTML(name string, payload any) (string, error) {
	if p.templates == nil {
		return "", fmt.Errorf("templates not initialised")
	}
	buf := &bytes.Buffer{}
	if err := p.templates.ExecuteTemplate(buf, name, payload); err != nil {
		return "", err
	}
	return buf.String(), nil
}
