package services_test

import (
	"regexp"
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateProductGeneratesSKU(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)

	cat := models.Category{Name: "Vegetables", NameTamil: "காய்கறிகள்", Active: true}
	require.NoError(t, db.Create(&cat).Error)

	p := models.Product{Name: "Tomato", CategoryID: cat.ID, Price: 40, Stock: 10}
	require.NoError(t, catalog.CreateProduct(&p))

	assert.Regexp(t, regexp.MustCompile(`^SANVE\d{4}$`), p.SKU)
}

func TestCreateProductKeepsExplicitSKU(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)

	cat := models.Category{Name: "Fruits", NameTamil: "பழங்கள்", Active: true}
	require.NoError(t, db.Create(&cat).Error)

	p := models.Product{SKU: "CUSTOM01", Name: "Banana", CategoryID: cat.ID, Price: 60, Stock: 5}
	require.NoError(t, catalog.CreateProduct(&p))
	assert.Equal(t, "CUSTOM01", p.SKU)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)

	first := models.Category{Name: "Spices", NameTamil: "மசாலா"}
	require.NoError(t, catalog.CreateCategory(&first))

	dup := models.Category{Name: "Spices", NameTamil: "மசாலா"}
	assert.ErrorIs(t, catalog.CreateCategory(&dup), services.ErrCategoryNameTaken)
}

func TestDeleteCategoryRefusesNonEmpty(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)

	p := seedProduct(t, db, "SANVE0001", 40, 10)

	assert.ErrorIs(t, catalog.DeleteCategory(p.CategoryID), services.ErrCategoryNotEmpty)

	require.NoError(t, catalog.DeleteProduct(p.ID))
	assert.NoError(t, catalog.DeleteCategory(p.CategoryID))
}

func TestStorefrontHidesInactiveProduct(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)

	p := seedProduct(t, db, "SANVE0002", 40, 10)
	_, err := catalog.Product(p.ID, false)
	require.NoError(t, err)

	_, err = catalog.ToggleProduct(p.ID)
	require.NoError(t, err)

	_, err = catalog.Product(p.ID, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The back office still sees it.
	_, err = catalog.Product(p.ID, true)
	assert.NoError(t, err)
}

func TestToggleProductReturnsNewState(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)

	p := seedProduct(t, db, "SANVE0003", 40, 10)

	state, err := catalog.ToggleProduct(p.ID)
	require.NoError(t, err)
	assert.False(t, state)

	state, err = catalog.ToggleProduct(p.ID)
	require.NoError(t, err)
	assert.True(t, state)
}

func TestDuplicateProduct(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)

	src := seedProduct(t, db, "SANVE0004", 40, 10)

	clone, err := catalog.DuplicateProduct(src.ID)
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, clone.ID)
	assert.NotEqual(t, src.SKU, clone.SKU)
	assert.Equal(t, src.Name+" (Copy)", clone.Name)
	assert.False(t, clone.Active)
	assert.Equal(t, src.Price, clone.Price)
}
