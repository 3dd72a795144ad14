package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/response"
	"gorm.io/gorm"
)

// ProductInput is the admin's product form.
type ProductInput struct {
	Name             string  `json:"name" validate:"required,min=2,max=200"`
	NameTamil        string  `json:"name_tamil" validate:"nullable,max=200"`
	Description      string  `json:"description"`
	DescriptionTamil string  `json:"description_tamil"`
	CategoryID       uint    `json:"category_id" validate:"required"`
	Price            float64 `json:"price" validate:"required,gt=0"`
	Stock            float64 `json:"stock" validate:"gte=0"`
	MinQuantity      float64 `json:"min_quantity" validate:"gt=0"`
	MaxQuantity      float64 `json:"max_quantity" validate:"gt=0"`
	QuantityStep     float64 `json:"quantity_step" validate:"gt=0"`
	Unit             string  `json:"unit" validate:"nullable,max=20"`
	UnitTamil        string  `json:"unit_tamil" validate:"nullable,max=20"`
	TaxRate          float64 `json:"tax_rate" validate:"gte=0,lte=100"`
	ImageURL         string  `json:"image_url" validate:"nullable,url"`
	Active           bool    `json:"active"`
	Featured         bool    `json:"featured"`
}

func (in *ProductInput) apply(p *models.Product) {
	p.Name = in.Name
	p.NameTamil = in.NameTamil
	p.Description = in.Description
	p.DescriptionTamil = in.DescriptionTamil
	p.CategoryID = in.CategoryID
	p.Price = in.Price
	p.Stock = in.Stock
	p.MinQuantity = in.MinQuantity
	p.MaxQuantity = in.MaxQuantity
	p.QuantityStep = in.QuantityStep
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	p.UnitTamil = in.UnitTamil
	p.TaxRate = in.TaxRate
	p.ImageURL = in.ImageURL
	p.Active = in.Active
	p.Featured = in.Featured
}

// AdminProductController is the back-office product CRUD, including the
// toggle, duplicate and bulk actions the product table exposes.
type AdminProductController struct {
	catalog *services.CatalogService
}

func NewAdminProductController(catalog *services.CatalogService) *AdminProductController {
	return &AdminProductController{catalog: catalog}
}

func (c *AdminProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoryID, _ := strconv.ParseUint(q.Get("category_id"), 10, 32)
	page, perPage := pageParams(r)

	products, pagination, err := c.catalog.AdminProducts(uint(categoryID), q.Get("q"), page, perPage)
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin products", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load products")
		return
	}
	response.Paginated(w, products, pagination)
}

func (c *AdminProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	p, err := c.catalog.Product(id, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}
	response.Success(w, p)
}

func (c *AdminProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if in.MinQuantity > in.MaxQuantity {
		response.ValidationError(w, map[string]string{
			"min_quantity": "The min_quantity field must not exceed max_quantity.",
		})
		return
	}

	var p models.Product
	in.apply(&p)
	if err := c.catalog.CreateProduct(&p); err != nil {
		logger.WithCtx(r.Context()).Error("product create", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create product")
		return
	}
	response.Created(w, p)
}

func (c *AdminProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	var in ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if in.MinQuantity > in.MaxQuantity {
		response.ValidationError(w, map[string]string{
			"min_quantity": "The min_quantity field must not exceed max_quantity.",
		})
		return
	}

	p, err := c.catalog.Product(id, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}

	in.apply(&p)
	if err := c.catalog.UpdateProduct(&p); err != nil {
		logger.WithCtx(r.Context()).Error("product update", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	response.Success(w, p)
}

func (c *AdminProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	if err := c.catalog.DeleteProduct(id); err != nil {
		logger.WithCtx(r.Context()).Error("product delete", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	response.Success(w, map[string]string{"message": "Product deleted"})
}

func (c *AdminProductController) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	active, err := c.catalog.ToggleProduct(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product toggle", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not toggle product")
		return
	}
	response.Success(w, map[string]interface{}{"id": id, "active": active})
}

func (c *AdminProductController) Duplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	clone, err := c.catalog.DuplicateProduct(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product duplicate", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not duplicate product")
		return
	}
	response.Created(w, clone)
}

type bulkInput struct {
	IDs    []uint `json:"ids" validate:"required"`
	Action string `json:"action" validate:"required,in=activate,deactivate,delete"`
}

// Bulk applies activate/deactivate/delete to a set of products.
func (c *AdminProductController) Bulk(w http.ResponseWriter, r *http.Request) {
	var in bulkInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(in.IDs) == 0 {
		response.ValidationError(w, map[string]string{"ids": "The ids field is required."})
		return
	}

	var (
		affected int64
		err      error
	)
	switch in.Action {
	case "activate":
		affected, err = c.catalog.BulkSetActive(in.IDs, true)
	case "deactivate":
		affected, err = c.catalog.BulkSetActive(in.IDs, false)
	case "delete":
		affected, err = c.catalog.BulkDelete(in.IDs)
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product bulk", "action", in.Action, "error", err)
		response.Error(w, http.StatusInternalServerError, "Bulk action failed")
		return
	}
	response.Success(w, map[string]interface{}{"action": in.Action, "affected": affected})
}
