package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/response"
	"gorm.io/gorm"
)

// CatalogController is the public browse surface: categories, product
// listings and product detail.
type CatalogController struct {
	catalog  *services.CatalogService
	settings *services.SettingsService
}

func NewCatalogController(catalog *services.CatalogService, settings *services.SettingsService) *CatalogController {
	return &CatalogController{catalog: catalog, settings: settings}
}

// Home returns what the storefront landing page needs: branding,
// categories and featured products.
func (c *CatalogController) Home(w http.ResponseWriter, r *http.Request) {
	settings, err := c.settings.Get()
	if err != nil {
		logger.WithCtx(r.Context()).Error("home: settings", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load store")
		return
	}

	cats, err := c.catalog.ActiveCategories()
	if err != nil {
		logger.WithCtx(r.Context()).Error("home: categories", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load store")
		return
	}

	featured, _, err := c.catalog.Products(0, "", true, 1, 8)
	if err != nil {
		logger.WithCtx(r.Context()).Error("home: featured", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load store")
		return
	}

	response.Success(w, map[string]interface{}{
		"store":      settings,
		"categories": cats,
		"featured":   featured,
	})
}

func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.catalog.ActiveCategories()
	if err != nil {
		logger.WithCtx(r.Context()).Error("categories list", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load categories")
		return
	}
	response.Success(w, cats)
}

func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoryID, _ := strconv.ParseUint(q.Get("category_id"), 10, 32)
	featured := q.Get("featured") == "true" || q.Get("featured") == "1"
	page, perPage := pageParams(r)

	products, pagination, err := c.catalog.Products(
		uint(categoryID), q.Get("q"), featured, page, perPage)
	if err != nil {
		logger.WithCtx(r.Context()).Error("products list", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load products")
		return
	}
	response.Paginated(w, products, pagination)
}

func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	p, err := c.catalog.Product(id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product show", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}
	response.Success(w, p)
}
