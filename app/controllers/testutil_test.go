package controllers

import (
	"fmt"
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database, isolated per test, with
// the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Category{}, &models.Product{},
		&models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.StoreSettings{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// seedProduct creates a category and an active product under it.
func seedProduct(t *testing.T, db *gorm.DB, sku string, price, stock float64) models.Product {
	t.Helper()

	var cat models.Category
	if err := db.Where("name = ?", "Vegetables").First(&cat).Error; err != nil {
		cat = models.Category{Name: "Vegetables", NameTamil: "காய்கறிகள்", Active: true}
		if err := db.Create(&cat).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	p := models.Product{
		SKU:          sku,
		Name:         "Product " + sku,
		CategoryID:   cat.ID,
		Price:        price,
		Stock:        stock,
		MinQuantity:  0.25,
		MaxQuantity:  5,
		QuantityStep: 0.25,
		Unit:         "kg",
		Active:       true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
		Active:   true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}
