package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/cache"
	"github.com/muthuvel/santhai/pkg/orm"
	"gorm.io/gorm"
)

const (
	categoriesCacheKey = "santhai:catalog:categories"
	categoriesCacheTTL = 5 * time.Minute

	skuPrefix      = "SAN"
	skuMaxAttempts = 10
)

// Catalog errors.
var (
	ErrCategoryNameTaken = errors.New("catalog: category name already exists")
	ErrCategoryNotEmpty  = errors.New("catalog: category still has products")
	ErrSKUExhausted      = errors.New("catalog: could not generate a unique SKU")
)

// CatalogService manages categories and products: the public browse
// surface and the back-office CRUD behind it.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		products:   repositories.NewProductRepository(db),
		categories: repositories.NewCategoryRepository(db),
	}
}

// ─────────────────────────────────────────────
// Storefront reads
// ─────────────────────────────────────────────

// ActiveCategories returns the visible categories in sort order, served
// from cache when hot.
func (s *CatalogService) ActiveCategories() ([]models.Category, error) {
	var cats []models.Category
	err := orm.Cached(categoriesCacheKey, categoriesCacheTTL, &cats, func(dest interface{}) error {
		list, err := s.categories.Active()
		if err != nil {
			return err
		}
		*dest.(*[]models.Category) = list
		return nil
	})
	return cats, err
}

// Products lists active products for the storefront.
func (s *CatalogService) Products(categoryID uint, search string, featured bool, page, perPage int) ([]models.Product, orm.Pagination, error) {
	return s.products.Find(repositories.ProductFilter{
		CategoryID: categoryID,
		Search:     search,
		Featured:   featured,
		ActiveOnly: true,
	}, page, perPage)
}

// Product returns one product with its category. The storefront hides
// inactive products; the admin detail page passes includeInactive.
func (s *CatalogService) Product(id uint, includeInactive bool) (models.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return p, err
	}
	if !p.Active && !includeInactive {
		return models.Product{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

// ─────────────────────────────────────────────
// Category management
// ─────────────────────────────────────────────

// CreateCategory adds a category after checking the name is free.
func (s *CatalogService) CreateCategory(cat *models.Category) error {
	taken, err := s.categories.NameExists(cat.Name)
	if err != nil {
		return fmt.Errorf("catalog: check category name: %w", err)
	}
	if taken {
		return ErrCategoryNameTaken
	}
	if err := s.categories.Create(cat); err != nil {
		return fmt.Errorf("catalog: create category: %w", err)
	}
	s.invalidateCategories()
	return nil
}

// UpdateCategory saves an edited category.
func (s *CatalogService) UpdateCategory(cat *models.Category) error {
	if err := s.categories.Update(cat); err != nil {
		return fmt.Errorf("catalog: update category: %w", err)
	}
	s.invalidateCategories()
	return nil
}

// DeleteCategory removes a category. Categories that still hold products
// are refused; reassign or delete the products first.
func (s *CatalogService) DeleteCategory(id uint) error {
	n, err := s.products.CountByCategory(id)
	if err != nil {
		return fmt.Errorf("catalog: count category products: %w", err)
	}
	if n > 0 {
		return ErrCategoryNotEmpty
	}
	if err := s.categories.Delete(id); err != nil {
		return fmt.Errorf("catalog: delete category: %w", err)
	}
	s.invalidateCategories()
	return nil
}

// AllCategories lists every category for the back office.
func (s *CatalogService) AllCategories() ([]models.Category, error) {
	return s.categories.All()
}

// Category returns one category by ID.
func (s *CatalogService) Category(id uint) (models.Category, error) {
	return s.categories.FindByID(id)
}

// ─────────────────────────────────────────────
// Product management
// ─────────────────────────────────────────────

// AdminProducts lists products for the back office, inactive included.
func (s *CatalogService) AdminProducts(categoryID uint, search string, page, perPage int) ([]models.Product, orm.Pagination, error) {
	return s.products.Find(repositories.ProductFilter{
		CategoryID: categoryID,
		Search:     search,
	}, page, perPage)
}

// CreateProduct stores a new product, generating a SKU when none is given.
func (s *CatalogService) CreateProduct(p *models.Product) error {
	if p.SKU == "" {
		cat, err := s.categories.FindByID(p.CategoryID)
		if err != nil {
			return fmt.Errorf("catalog: product category: %w", err)
		}
		sku, err := s.generateSKU(cat.Name)
		if err != nil {
			return err
		}
		p.SKU = sku
	}
	if err := s.products.Create(p); err != nil {
		return fmt.Errorf("catalog: create product: %w", err)
	}
	return nil
}

// UpdateProduct saves an edited product.
func (s *CatalogService) UpdateProduct(p *models.Product) error {
	if err := s.products.Update(p); err != nil {
		return fmt.Errorf("catalog: update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product. Past order items keep their snapshot.
func (s *CatalogService) DeleteProduct(id uint) error {
	return s.products.Delete(id)
}

// ToggleProduct flips a product between active and inactive and returns
// the new state.
func (s *CatalogService) ToggleProduct(id uint) (bool, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return false, err
	}
	if err := s.products.SetActive(id, !p.Active); err != nil {
		return false, fmt.Errorf("catalog: toggle product: %w", err)
	}
	return !p.Active, nil
}

// DuplicateProduct clones a product as an inactive draft with a fresh SKU
// and "(Copy)" appended to the name.
func (s *CatalogService) DuplicateProduct(id uint) (models.Product, error) {
	src, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}

	sku, err := s.generateSKU(src.Category.Name)
	if err != nil {
		return models.Product{}, err
	}

	clone := src
	clone.ID = 0
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}
	clone.SKU = sku
	clone.Name = src.Name + " (Copy)"
	clone.Active = false
	clone.Featured = false
	clone.Category = models.Category{}

	if err := s.products.Create(&clone); err != nil {
		return models.Product{}, fmt.Errorf("catalog: duplicate product: %w", err)
	}
	return clone, nil
}

// BulkSetActive activates or deactivates many products at once.
func (s *CatalogService) BulkSetActive(ids []uint, active bool) (int64, error) {
	return s.products.SetActiveBulk(ids, active)
}

// BulkDelete removes many products at once.
func (s *CatalogService) BulkDelete(ids []uint) (int64, error) {
	return s.products.DeleteBulk(ids)
}

// generateSKU builds "SAN" + two letters from the category + 4 random
// digits, retrying on collision.
func (s *CatalogService) generateSKU(categoryName string) (string, error) {
	letters := "XX"
	clean := strings.ToUpper(strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			return r
		}
		return -1
	}, categoryName))
	if len(clean) >= 2 {
		letters = clean[:2]
	} else if len(clean) == 1 {
		letters = clean + "X"
	}

	for i := 0; i < skuMaxAttempts; i++ {
		sku := fmt.Sprintf("%s%s%04d", skuPrefix, letters, rand.Intn(10000))
		exists, err := s.products.SKUExists(sku)
		if err != nil {
			return "", fmt.Errorf("catalog: check sku: %w", err)
		}
		if !exists {
			return sku, nil
		}
	}
	return "", ErrSKUExhausted
}

func (s *CatalogService) invalidateCategories() {
	cache.Forget(categoriesCacheKey) //nolint:errcheck
}
