package repositories

import (
	"github.com/muthuvel/santhai/app/models"
	"gorm.io/gorm"
)

// CartRepository handles database operations for the persisted
// (authenticated) cart.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// ItemsByUser returns the user's cart lines with products preloaded.
func (r *CartRepository) ItemsByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// FindItem returns the user's cart line for a product, if present.
func (r *CartRepository) FindItem(userID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	return item, err
}

// FindItemByID returns one cart line owned by the user.
func (r *CartRepository) FindItemByID(userID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	return item, err
}

// Create persists a new cart line.
func (r *CartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// Update persists changes to a cart line.
func (r *CartRepository) Update(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// Delete removes one cart line.
func (r *CartRepository) Delete(item *models.CartItem) error {
	return r.db.Delete(item).Error
}

// Count returns how many lines the user's cart holds.
func (r *CartRepository) Count(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
