package services

import (
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	out := renderTemplate("Hi {customer_name}, order {order_number} is {status}.", map[string]string{
		"customer_name": "Kumar",
		"order_number":  "SAN202608310001",
		"status":        "shipped",
	})
	assert.Equal(t, "Hi Kumar, order SAN202608310001 is shipped.", out)
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	out := renderTemplate("Hello {customer_name}, see {mystery}.", map[string]string{
		"customer_name": "Mala",
	})
	assert.Equal(t, "Hello Mala, see {mystery}.", out)
}

func TestOrderVars(t *testing.T) {
	order := models.Order{
		OrderNumber: "SAN202608310002",
		Total:       123.4,
		Status:      models.OrderStatusConfirmed,
		TrackingURL: "https://track.example/123",
	}
	user := models.User{Username: "ravi", FirstName: "Ravi", LastName: "K"}
	settings := models.StoreSettings{Website: "https://santhai.example"}

	vars := orderVars(order, user, settings)

	assert.Equal(t, "Ravi K", vars["customer_name"])
	assert.Equal(t, "SAN202608310002", vars["order_number"])
	assert.Equal(t, "123.40", vars["total_amount"])
	assert.Equal(t, "confirmed", vars["status"])
	assert.Equal(t, "https://track.example/123", vars["tracking_url"])
	assert.Equal(t, "https://santhai.example", vars["website_url"])
}
