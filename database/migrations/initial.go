package migrations

import (
	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_users_tables", &CreateUsersTables{})
	migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260101000002_create_cart_table", &CreateCartTable{})
	migration.Register("20260101000003_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260101000004_create_store_settings_table", &CreateStoreSettingsTable{})
	migration.Register("20260101000005_create_campaigns_table", &CreateCampaignsTable{})
	migration.Register("20260101000006_create_notification_logs_table", &CreateNotificationLogsTable{})
}

// -------- 0000: users and addresses --------

type CreateUsersTables struct{}

func (m *CreateUsersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Address{})
}

func (m *CreateUsersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("addresses", "users")
}

// -------- 0001: categories and products --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products", "categories")
}

// -------- 0002: cart items --------

type CreateCartTable struct{}

func (m *CreateCartTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.CartItem{})
}

func (m *CreateCartTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items")
}

// -------- 0003: orders and order items --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0004: store settings singleton --------

type CreateStoreSettingsTable struct{}

func (m *CreateStoreSettingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.StoreSettings{})
}

func (m *CreateStoreSettingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("store_settings")
}

// -------- 0005: campaigns --------

type CreateCampaignsTable struct{}

func (m *CreateCampaignsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Campaign{})
}

func (m *CreateCampaignsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("campaigns")
}

// -------- 0006: notification logs --------

type CreateNotificationLogsTable struct{}

func (m *CreateNotificationLogsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.NotificationLog{})
}

func (m *CreateNotificationLogsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("notification_logs")
}
