package services_test

import (
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/config"
	"github.com/muthuvel/santhai/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T, db *gorm.DB) *services.OrderService {
	t.Helper()

	// Invoices render to local storage on delivery.
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()

	settings := services.NewSettingsService(db)
	return services.NewOrderService(db, services.NewInvoiceService(settings))
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, number string) models.Order {
	t.Helper()

	order := models.Order{
		OrderNumber:     number,
		UserID:          userID,
		Subtotal:        100,
		Total:           150,
		DeliveryName:    "Kumar S",
		DeliveryPhone:   "9876543210",
		DeliveryAddress: "12 Gandhi Street",
		DeliveryCity:    "Chennai",
		DeliveryState:   "Tamil Nadu",
		DeliveryPincode: "600004",
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   "cod",
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Tomato", ProductSKU: "SANVE0001", Unit: "kg", Price: 40, Quantity: 2.5},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestUpdateStatusStampsTimestamps(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(t, db)
	user := seedUser(t, db, "kumar", models.RoleCustomer)
	order := seedOrder(t, db, user.ID, "SAN202601010001")

	updated, err := orders.UpdateStatus(order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)
	require.NotNil(t, updated.ConfirmedAt)

	updated, err = orders.UpdateStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	require.NotNil(t, updated.ShippedAt)
	assert.NotNil(t, updated.ConfirmedAt)
}

func TestUpdateStatusSameStatusNoOp(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(t, db)
	user := seedUser(t, db, "mala", models.RoleCustomer)
	order := seedOrder(t, db, user.ID, "SAN202601010002")

	updated, err := orders.UpdateStatus(order.ID, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestUpdateStatusUnknown(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(t, db)

	_, err := orders.UpdateStatus(1, "teleported")
	assert.ErrorIs(t, err, services.ErrUnknownStatus)
}

func TestDeliveredIsTerminalAndGeneratesInvoice(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(t, db)
	user := seedUser(t, db, "ravi", models.RoleCustomer)
	order := seedOrder(t, db, user.ID, "SAN202601010003")

	updated, err := orders.UpdateStatus(order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveredAt)
	assert.False(t, storage.Missing(services.InvoicePath(order.OrderNumber)))

	_, err = orders.UpdateStatus(order.ID, models.OrderStatusPending)
	assert.ErrorIs(t, err, services.ErrOrderDelivered)
}

func TestCancelledIsTerminal(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(t, db)
	user := seedUser(t, db, "devi", models.RoleCustomer)
	order := seedOrder(t, db, user.ID, "SAN202601010004")

	_, err := orders.UpdateStatus(order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = orders.UpdateStatus(order.ID, models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, services.ErrOrderCancelled)

	// Cancelling does not restore stock; the order snapshot stands.
	var fresh models.Order
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, fresh.Status)
}

func TestOrderForUserScoping(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(t, db)
	owner := seedUser(t, db, "selvi", models.RoleCustomer)
	other := seedUser(t, db, "mani", models.RoleCustomer)
	order := seedOrder(t, db, owner.ID, "SAN202601010005")

	_, err := orders.OrderForUser(order.ID, owner.ID)
	require.NoError(t, err)

	_, err = orders.OrderForUser(order.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdatePaymentStatus(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderService(t, db)
	user := seedUser(t, db, "raja", models.RoleCustomer)
	order := seedOrder(t, db, user.ID, "SAN202601010006")

	updated, err := orders.UpdatePaymentStatus(order.ID, models.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)

	_, err = orders.UpdatePaymentStatus(order.ID, "iou")
	assert.ErrorIs(t, err, services.ErrUnknownPayStatus)
}
