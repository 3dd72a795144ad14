package repositories

import (
	"time"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/pkg/orm"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID returns an order with its items.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var o models.Order
	err := r.db.Preload("Items").Preload("User").First(&o, id).Error
	return o, err
}

// FindForUser returns an order only if it belongs to the user.
func (r *OrderRepository) FindForUser(id, userID uint) (models.Order, error) {
	var o models.Order
	err := r.db.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).First(&o).Error
	return o, err
}

// ByUser returns the user's orders newest-first, paginated.
func (r *OrderRepository) ByUser(userID uint, page, perPage int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	q := r.db.Model(&models.Order{}).
		Where("user_id = ?", userID).Order("created_at DESC")
	pagination, err := orm.Paginate(q, &orders, page, perPage)
	return orders, pagination, err
}

// All returns all orders newest-first, optionally filtered by status.
func (r *OrderRepository) All(status string, page, perPage int) ([]models.Order, orm.Pagination, error) {
	q := r.db.Model(&models.Order{}).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	pagination, err := orm.Paginate(q, &orders, page, perPage)
	return orders, pagination, err
}

// Recent returns the n most recent orders.
func (r *OrderRepository) Recent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at DESC").Limit(n).Find(&orders).Error
	return orders, err
}

// Update persists changes to an existing order.
func (r *OrderRepository) Update(o *models.Order) error {
	return r.db.Save(o).Error
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Count(&n).Error
	return n, err
}

// CountByStatus counts orders in the given status.
func (r *OrderRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// CountCreatedSince counts orders created at or after t. The checkout
// service uses this with midnight to derive the same-day sequence number.
func (r *OrderRepository) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}

// PaidTotalSince sums the totals of paid orders created at or after t.
func (r *OrderRepository) PaidTotalSince(t time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&models.Order{}).
		Where("created_at >= ? AND payment_status = ?", t, models.PaymentStatusPaid).
		Select("COALESCE(SUM(total), 0)").Scan(&total).Error
	return total, err
}
