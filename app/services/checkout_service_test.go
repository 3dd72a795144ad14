package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutInput() services.CheckoutInput {
	return services.CheckoutInput{
		Name:          "Kumar S",
		Phone:         "9876543210",
		Address:       "12 Gandhi Street, Mylapore",
		City:          "Chennai",
		State:         "Tamil Nadu",
		Pincode:       "600004",
		PaymentMethod: "upi",
	}
}

func TestPlaceOrder(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	checkout := services.NewCheckoutService(db, settings)

	user := seedUser(t, db, "kumar", models.RoleCustomer)
	p := seedProduct(t, db, "SANVE0001", 40, 10)
	taxed := seedProduct(t, db, "SANRI0001", 100, 50)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", taxed.ID).
		Updates(map[string]interface{}{"tax_rate": 5, "min_quantity": 1, "quantity_step": 1, "max_quantity": 25}).Error)

	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: p.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: taxed.ID, Quantity: 3}).Error)

	order, err := checkout.PlaceOrder(user.ID, checkoutInput())
	require.NoError(t, err)

	want := fmt.Sprintf("SAN%s0001", time.Now().Format("20060102"))
	assert.Equal(t, want, order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	// 2×40 + 3×100 = 380 subtotal, 15 tax, 50 delivery below threshold.
	assert.InDelta(t, 380, order.Subtotal, 1e-9)
	assert.InDelta(t, 15, order.TaxAmount, 1e-9)
	assert.InDelta(t, 50, order.DeliveryCharge, 1e-9)
	assert.InDelta(t, 445, order.Total, 1e-9)
	require.Len(t, order.Items, 2)

	// Stock decremented.
	var fresh models.Product
	require.NoError(t, db.First(&fresh, p.ID).Error)
	assert.InDelta(t, 8, fresh.Stock, 1e-9)
	fresh = models.Product{}
	require.NoError(t, db.First(&fresh, taxed.ID).Error)
	assert.InDelta(t, 47, fresh.Stock, 1e-9)

	// Cart cleared.
	var n int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPlaceOrderSequencePerDay(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	checkout := services.NewCheckoutService(db, settings)

	user := seedUser(t, db, "mala", models.RoleCustomer)
	p := seedProduct(t, db, "SANVE0002", 40, 100)

	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: p.ID, Quantity: 1}).Error)
	first, err := checkout.PlaceOrder(user.ID, checkoutInput())
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: p.ID, Quantity: 1}).Error)
	second, err := checkout.PlaceOrder(user.ID, checkoutInput())
	require.NoError(t, err)

	day := time.Now().Format("20060102")
	assert.Equal(t, "SAN"+day+"0001", first.OrderNumber)
	assert.Equal(t, "SAN"+day+"0002", second.OrderNumber)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	checkout := services.NewCheckoutService(db, settings)

	user := seedUser(t, db, "ravi", models.RoleCustomer)

	_, err := checkout.PlaceOrder(user.ID, checkoutInput())
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestPlaceOrderStockChangedRollsBack(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	checkout := services.NewCheckoutService(db, settings)

	user := seedUser(t, db, "devi", models.RoleCustomer)
	ok := seedProduct(t, db, "SANVE0003", 40, 10)
	scarce := seedProduct(t, db, "SANVE0004", 40, 1)

	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: ok.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: scarce.ID, Quantity: 3}).Error)

	_, err := checkout.PlaceOrder(user.ID, checkoutInput())
	require.ErrorIs(t, err, services.ErrStockChanged)

	// The whole transaction rolled back: no order, no stock movement,
	// cart untouched.
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, ok.ID).Error)
	assert.InDelta(t, 10, fresh.Stock, 1e-9)

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&items).Error)
	assert.Equal(t, int64(2), items)
}

func TestPlaceOrderFreeDelivery(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	checkout := services.NewCheckoutService(db, settings)

	user := seedUser(t, db, "selvi", models.RoleCustomer)
	p := seedProduct(t, db, "SANRI0002", 200, 100)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{"min_quantity": 1, "quantity_step": 1, "max_quantity": 25}).Error)

	// 3×200 = 600, above the default 500 threshold.
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: p.ID, Quantity: 3}).Error)

	order, err := checkout.PlaceOrder(user.ID, checkoutInput())
	require.NoError(t, err)
	assert.Zero(t, order.DeliveryCharge)
	assert.InDelta(t, 600, order.Total, 1e-9)
}
