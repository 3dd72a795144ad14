package repositories

import (
	"github.com/muthuvel/santhai/app/models"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Active returns active categories in sort order.
func (r *CategoryRepository) Active() ([]models.Category, error) {
	var cats []models.Category
	err := r.db.Where("active = ?", true).Order("sort_order").Find(&cats).Error
	return cats, err
}

// All returns every category in sort order, active or not.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var cats []models.Category
	err := r.db.Order("sort_order").Find(&cats).Error
	return cats, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var cat models.Category
	err := r.db.First(&cat, id).Error
	return cat, err
}

// NameExists reports whether a category with the name already exists.
func (r *CategoryRepository) NameExists(name string) (bool, error) {
	var n int64
	err := r.db.Model(&models.Category{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

// Create persists a new category.
func (r *CategoryRepository) Create(cat *models.Category) error {
	return r.db.Create(cat).Error
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(cat *models.Category) error {
	return r.db.Save(cat).Error
}

// Delete removes a category. Callers must first check it owns no products.
func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// Count returns the total number of categories.
func (r *CategoryRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Category{}).Count(&n).Error
	return n, err
}
