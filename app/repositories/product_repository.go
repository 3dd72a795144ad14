package repositories

import (
	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/pkg/orm"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows storefront product listings.
type ProductFilter struct {
	CategoryID uint
	Search     string
	Featured   bool
	ActiveOnly bool
}

// Find returns products matching the filter, paginated.
func (r *ProductRepository) Find(f ProductFilter, page, perPage int) ([]models.Product, orm.Pagination, error) {
	q := r.db.Model(&models.Product{})
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR name_tamil LIKE ?", like, like)
	}
	if f.Featured {
		q = q.Where("featured = ?", true)
	}

	var products []models.Product
	pagination, err := orm.Paginate(q.Order("created_at DESC"), &products, page, perPage)
	return products, pagination, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var p models.Product
	err := r.db.Preload("Category").First(&p, id).Error
	return p, err
}

// SKUExists reports whether any product already uses the SKU.
func (r *ProductRepository) SKUExists(sku string) (bool, error) {
	var n int64
	err := r.db.Model(&models.Product{}).Where("sku = ?", sku).Count(&n).Error
	return n > 0, err
}

// Create persists a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

// Delete removes a product.
func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// SetActive flips the active flag on one product.
func (r *ProductRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		Update("active", active).Error
}

// SetActiveBulk flips the active flag on many products, returning the
// number of rows touched.
func (r *ProductRepository) SetActiveBulk(ids []uint, active bool) (int64, error) {
	res := r.db.Model(&models.Product{}).Where("id IN ?", ids).
		Update("active", active)
	return res.RowsAffected, res.Error
}

// DeleteBulk removes many products, returning the number deleted.
func (r *ProductRepository) DeleteBulk(ids []uint) (int64, error) {
	res := r.db.Delete(&models.Product{}, ids)
	return res.RowsAffected, res.Error
}

// Count returns the total number of products.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).Count(&n).Error
	return n, err
}

// CountByCategory counts products assigned to a category; used to block
// deleting a category that still owns products.
func (r *ProductRepository) CountByCategory(categoryID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

// LowStock returns active products whose stock has fallen to or below
// threshold, lowest first.
func (r *ProductRepository) LowStock(threshold float64, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("active = ? AND stock <= ?", true, threshold).
		Order("stock").Limit(limit).Find(&products).Error
	return products, err
}
