package seeders

import (
	"errors"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("users", SeedUsers)
	Register("catalog", SeedCatalog)
	Register("settings", SeedSettings)
}

// SeedUsers creates the initial admin and storekeeper accounts.
// Change these passwords before going live.
func SeedUsers(db *gorm.DB) error {
	seed := []struct {
		username string
		email    string
		role     string
		password string
	}{
		{"admin", "admin@santhai.local", models.RoleAdmin, "admin123"},
		{"kadaikaran", "store@santhai.local", models.RoleStorekeeper, "store123"},
	}

	for _, s := range seed {
		var existing models.User
		err := db.Where("username = ?", s.username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := auth.HashPassword(s.password)
		if err != nil {
			return err
		}
		user := models.User{
			Username: s.username,
			Email:    s.email,
			Password: hash,
			Role:     s.role,
			Active:   true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCatalog inserts a small bilingual starter catalogue. Skipped
// entirely when any category already exists.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Vegetables", NameTamil: "காய்கறிகள்", SortOrder: 1, Active: true},
		{Name: "Fruits", NameTamil: "பழங்கள்", SortOrder: 2, Active: true},
		{Name: "Rice & Grains", NameTamil: "அரிசி & தானியங்கள்", SortOrder: 3, Active: true},
		{Name: "Spices", NameTamil: "மசாலா", SortOrder: 4, Active: true},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{SKU: "SANVE0001", Name: "Tomato", NameTamil: "தக்காளி", CategoryID: categories[0].ID, Price: 40, Stock: 50, MinQuantity: 0.25, MaxQuantity: 5, QuantityStep: 0.25, Unit: "kg", UnitTamil: "கிலோ", TaxRate: 0, Active: true, Featured: true},
		{SKU: "SANVE0002", Name: "Onion", NameTamil: "வெங்காயம்", CategoryID: categories[0].ID, Price: 35, Stock: 80, MinQuantity: 0.25, MaxQuantity: 5, QuantityStep: 0.25, Unit: "kg", UnitTamil: "கிலோ", TaxRate: 0, Active: true, Featured: true},
		{SKU: "SANFR0001", Name: "Banana", NameTamil: "வாழைப்பழம்", CategoryID: categories[1].ID, Price: 60, Stock: 30, MinQuantity: 0.5, MaxQuantity: 3, QuantityStep: 0.5, Unit: "kg", UnitTamil: "கிலோ", TaxRate: 0, Active: true, Featured: true},
		{SKU: "SANRI0001", Name: "Ponni Rice", NameTamil: "பொன்னி அரிசி", CategoryID: categories[2].ID, Price: 65, Stock: 200, MinQuantity: 1, MaxQuantity: 25, QuantityStep: 1, Unit: "kg", UnitTamil: "கிலோ", TaxRate: 5, Active: true},
		{SKU: "SANSP0001", Name: "Turmeric Powder", NameTamil: "மஞ்சள் தூள்", CategoryID: categories[3].ID, Price: 320, Stock: 10, MinQuantity: 0.1, MaxQuantity: 1, QuantityStep: 0.1, Unit: "kg", UnitTamil: "கிலோ", TaxRate: 5, Active: true},
	}
	return db.Create(&products).Error
}

// SeedSettings ensures the store settings singleton row exists.
func SeedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.StoreSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := models.StoreSettings{
		StoreName:          "Santhai",
		StoreNameTamil:     "சந்தை",
		Tagline:            "Fresh from the farm",
		FreeDeliveryAmount: 500,
		DeliveryCharge:     40,
		InvoicePrefix:      "SAN",
	}
	return db.Create(&settings).Error
}
