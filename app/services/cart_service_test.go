package services_test

import (
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuantity(t *testing.T) {
	p := &models.Product{MinQuantity: 0.25, MaxQuantity: 5, QuantityStep: 0.25}

	assert.NoError(t, services.ValidateQuantity(p, 0.25))
	assert.NoError(t, services.ValidateQuantity(p, 1.75))
	assert.NoError(t, services.ValidateQuantity(p, 5))

	assert.ErrorIs(t, services.ValidateQuantity(p, 0.1), services.ErrQuantityTooLow)
	assert.ErrorIs(t, services.ValidateQuantity(p, 5.25), services.ErrQuantityTooHigh)
	assert.ErrorIs(t, services.ValidateQuantity(p, 0.3), services.ErrQuantityStep)
}

func TestValidateQuantityStepFloat(t *testing.T) {
	// 0.3 / 0.1 is not an exact multiple in binary floating point; the
	// epsilon check must still accept it.
	p := &models.Product{MinQuantity: 0.1, MaxQuantity: 10, QuantityStep: 0.1}

	assert.NoError(t, services.ValidateQuantity(p, 0.3))
	assert.NoError(t, services.ValidateQuantity(p, 0.7))
	assert.ErrorIs(t, services.ValidateQuantity(p, 0.35), services.ErrQuantityStep)
}

func TestCartAddSumsWithExistingLine(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	carts := services.NewCartService(db, settings)

	user := seedUser(t, db, "kumar", models.RoleCustomer)
	p := seedProduct(t, db, "SANVE0001", 40, 10)

	require.NoError(t, carts.Add(user.ID, p.ID, 1))
	require.NoError(t, carts.Add(user.ID, p.ID, 1.5))

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2.5, items[0].Quantity)
}

func TestCartAddRejections(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	carts := services.NewCartService(db, settings)

	user := seedUser(t, db, "mala", models.RoleCustomer)
	p := seedProduct(t, db, "SANVE0002", 40, 2)

	assert.ErrorIs(t, carts.Add(user.ID, 9999, 1), services.ErrProductUnavailable)

	inactive := seedProduct(t, db, "SANVE0003", 40, 10)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", inactive.ID).
		Update("active", false).Error)
	assert.ErrorIs(t, carts.Add(user.ID, inactive.ID, 1), services.ErrProductUnavailable)

	// Stock is 2 but bounds allow up to 5.
	assert.ErrorIs(t, carts.Add(user.ID, p.ID, 3), services.ErrInsufficientStock)

	// 1 + 1.5 = 2.5 exceeds the 2 in stock.
	require.NoError(t, carts.Add(user.ID, p.ID, 1))
	assert.ErrorIs(t, carts.Add(user.ID, p.ID, 1.5), services.ErrInsufficientStock)
}

func TestCartViewTotals(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	carts := services.NewCartService(db, settings)

	user := seedUser(t, db, "ravi", models.RoleCustomer)
	plain := seedProduct(t, db, "SANVE0004", 40, 10)

	taxed := seedProduct(t, db, "SANRI0001", 100, 50)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", taxed.ID).
		Updates(map[string]interface{}{"tax_rate": 5, "max_quantity": 25, "quantity_step": 1, "min_quantity": 1}).Error)

	require.NoError(t, carts.Add(user.ID, plain.ID, 2))   // 80.00
	require.NoError(t, carts.Add(user.ID, taxed.ID, 2))   // 200.00 + 10.00 tax

	view, err := carts.View(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, view.Count)
	assert.InDelta(t, 280, view.Subtotal, 1e-9)
	assert.InDelta(t, 10, view.TaxAmount, 1e-9)
	// Below the default 500 free-delivery threshold.
	assert.InDelta(t, 50, view.DeliveryCharge, 1e-9)
	assert.InDelta(t, 340, view.Total, 1e-9)
}

func TestCartUpdateItemZeroRemoves(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	carts := services.NewCartService(db, settings)

	user := seedUser(t, db, "devi", models.RoleCustomer)
	p := seedProduct(t, db, "SANVE0005", 40, 10)
	require.NoError(t, carts.Add(user.ID, p.ID, 1))

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&item).Error)
	require.NoError(t, carts.UpdateItem(user.ID, item.ID, 0))

	var n int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCartMergeReportsRejects(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	carts := services.NewCartService(db, settings)

	user := seedUser(t, db, "selvi", models.RoleCustomer)
	good := seedProduct(t, db, "SANVE0006", 40, 10)
	scarce := seedProduct(t, db, "SANVE0007", 40, 1)

	sc := services.SessionCart{
		good.ID:   2,
		scarce.ID: 3, // more than stock
		9999:      1, // vanished product
	}
	rejects := carts.Merge(user.ID, sc)

	assert.Len(t, rejects, 2)

	view, err := carts.View(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, good.ID, view.Items[0].Product.ID)
	assert.Equal(t, 2.0, view.Items[0].Quantity)
}
