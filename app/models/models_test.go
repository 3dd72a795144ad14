package models_test

import (
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range models.OrderStatuses {
		assert.True(t, models.ValidOrderStatus(s), s)
	}
	assert.False(t, models.ValidOrderStatus("teleported"))
	assert.False(t, models.ValidOrderStatus(""))
}

func TestDeliveryChargeFor(t *testing.T) {
	s := models.StoreSettings{FreeDeliveryAmount: 500, DeliveryCharge: 50}

	assert.Equal(t, 50.0, s.DeliveryChargeFor(499.99))
	assert.Equal(t, 0.0, s.DeliveryChargeFor(500))
	assert.Equal(t, 0.0, s.DeliveryChargeFor(900))
}

func TestProductLineMath(t *testing.T) {
	p := models.Product{Price: 40, TaxRate: 5}

	assert.InDelta(t, 100, p.LineSubtotal(2.5), 1e-9)
	assert.InDelta(t, 5, p.LineTax(2.5), 1e-9)
}

func TestUserDisplayName(t *testing.T) {
	u := models.User{Username: "kumar"}
	assert.Equal(t, "kumar", u.DisplayName())

	u.FirstName = "Kumar"
	u.LastName = "S"
	assert.Equal(t, "Kumar S", u.DisplayName())
}

func TestRoleHelpers(t *testing.T) {
	admin := models.User{Role: models.RoleAdmin}
	keeper := models.User{Role: models.RoleStorekeeper}
	customer := models.User{Role: models.RoleCustomer}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsStorekeeper())
	assert.False(t, keeper.IsAdmin())
	assert.True(t, keeper.IsStorekeeper())
	assert.False(t, customer.IsStorekeeper())
}
