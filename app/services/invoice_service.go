package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/pkg/storage"
)

// invoiceTemplate renders the invoice document from the order snapshot
// and the invoice section of the store settings.
var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"mul": func(a, b float64) float64 { return a * b },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Settings.InvoiceHeader}} {{.Order.OrderNumber}}</title>
<style>
body { font-family: Arial, sans-serif; color: #222; margin: 40px; }
.header { display: flex; justify-content: space-between; border-bottom: 2px solid {{.Settings.ThemeColor}}; padding-bottom: 16px; }
.logo-left { text-align: left; } .logo-center { text-align: center; } .logo-right { text-align: right; }
h1 { color: {{.Settings.ThemeColor}}; margin: 0; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background: {{.Settings.ThemeColor}}; color: #fff; }
.totals td { border: none; text-align: right; }
.footer { margin-top: 32px; text-align: center; color: #888; }
</style>
</head>
<body>
<div class="header">
  <div class="logo-{{.Settings.InvoiceLogoPosition}}">
    {{if .Settings.InvoiceLogoURL}}<img src="{{.Settings.InvoiceLogoURL}}" height="{{.Settings.InvoiceLogoSize}}">{{end}}
    <h1>{{.Settings.InvoiceHeader}}</h1>
    <p>{{.Settings.StoreName}}{{if .Settings.StoreNameTamil}} | {{.Settings.StoreNameTamil}}{{end}}</p>
    <p>{{.Settings.Address}}</p>
    {{if .Settings.GSTNumber}}<p>GSTIN: {{.Settings.GSTNumber}}</p>{{end}}
  </div>
  <div>
    <p><strong>Invoice:</strong> {{.Order.OrderNumber}}</p>
    <p><strong>Date:</strong> {{.Order.CreatedAt.Format "02 Jan 2006"}}</p>
    <p><strong>Payment:</strong> {{.Order.PaymentMethod}} ({{.Order.PaymentStatus}})</p>
  </div>
</div>

<h3>Deliver to</h3>
<p>{{.Order.DeliveryName}}, {{.Order.DeliveryPhone}}<br>
{{.Order.DeliveryAddress}}, {{.Order.DeliveryCity}}, {{.Order.DeliveryState}} - {{.Order.DeliveryPincode}}</p>

<table>
<tr><th>#</th><th>Item</th><th>SKU</th><th>Qty</th><th>Rate</th><th>GST %</th><th>Amount</th></tr>
{{range $i, $item := .Order.Items}}
<tr>
  <td>{{add $i 1}}</td>
  <td>{{$item.ProductName}}{{if $item.ProductNameTamil}} ({{$item.ProductNameTamil}}){{end}}</td>
  <td>{{$item.ProductSKU}}</td>
  <td>{{$item.Quantity}} {{$item.Unit}}</td>
  <td>₹{{printf "%.2f" $item.Price}}</td>
  <td>{{printf "%.1f" $item.TaxRate}}</td>
  <td>₹{{printf "%.2f" (mul $item.Price $item.Quantity)}}</td>
</tr>
{{end}}
</table>

<table class="totals">
<tr><td>Subtotal:</td><td>₹{{printf "%.2f" .Order.Subtotal}}</td></tr>
<tr><td>Tax:</td><td>₹{{printf "%.2f" .Order.TaxAmount}}</td></tr>
<tr><td>Delivery:</td><td>₹{{printf "%.2f" .Order.DeliveryCharge}}</td></tr>
<tr><td><strong>Total:</strong></td><td><strong>₹{{printf "%.2f" .Order.Total}}</strong></td></tr>
</table>

{{if .Settings.UPIID}}<p><strong>UPI:</strong> {{.Settings.UPIID}}</p>{{end}}
{{if .Settings.BankAccountNumber}}
<p><strong>Bank:</strong> {{.Settings.BankName}}, A/C {{.Settings.BankAccountNumber}} ({{.Settings.BankAccountName}}), IFSC {{.Settings.BankIFSC}}</p>
{{end}}

<div class="footer">{{.Settings.InvoiceFooter}}</div>
</body>
</html>`))

// InvoiceService renders invoice documents and stores them on the
// configured disk (local filesystem or S3).
type InvoiceService struct {
	settings *SettingsService
}

func NewInvoiceService(settings *SettingsService) *InvoiceService {
	return &InvoiceService{settings: settings}
}

// InvoicePath is where an order's invoice lives on the storage disk.
func InvoicePath(orderNumber string) string {
	return fmt.Sprintf("invoices/invoice_%s.html", orderNumber)
}

// Generate renders the invoice for an order and writes it to storage,
// overwriting any previous render. Returns the storage path.
func (s *InvoiceService) Generate(order models.Order) (string, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := struct {
		Order    models.Order
		Settings models.StoreSettings
	}{order, settings}

	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("invoice: render %s: %w", order.OrderNumber, err)
	}

	path := InvoicePath(order.OrderNumber)
	if err := storage.Put(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("invoice: store %s: %w", path, err)
	}
	return path, nil
}

// Fetch returns a previously generated invoice, rendering it on demand
// when missing.
func (s *InvoiceService) Fetch(order models.Order) ([]byte, error) {
	path := InvoicePath(order.OrderNumber)
	if storage.Missing(path) {
		if _, err := s.Generate(order); err != nil {
			return nil, err
		}
	}
	return storage.Get(path)
}
