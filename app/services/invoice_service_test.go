package services_test

import (
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/config"
	"github.com/muthuvel/santhai/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceRender(t *testing.T) {
	db := newTestDB(t)
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()

	invoices := services.NewInvoiceService(services.NewSettingsService(db))

	order := models.Order{
		OrderNumber:     "SAN202608310042",
		Subtotal:        100,
		TaxAmount:       5,
		DeliveryCharge:  50,
		Total:           155,
		DeliveryName:    "Kumar S",
		DeliveryAddress: "12 Gandhi Street",
		DeliveryCity:    "Chennai",
		PaymentMethod:   "upi",
		Items: []models.OrderItem{
			{ProductName: "Tomato", ProductSKU: "SANVE0001", Unit: "kg", Price: 40, Quantity: 2.5},
		},
	}

	html, err := invoices.Fetch(order)
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "SAN202608310042")
	assert.Contains(t, body, "Tomato")
	assert.Contains(t, body, "Kumar S")
	// Default invoice header from settings.
	assert.Contains(t, body, "TAX INVOICE")

	// Fetch renders on demand and persists the document.
	assert.False(t, storage.Missing(services.InvoicePath(order.OrderNumber)))
}

func TestInvoicePath(t *testing.T) {
	assert.Equal(t, "invoices/invoice_SAN202608310001.html",
		services.InvoicePath("SAN202608310001"))
}
