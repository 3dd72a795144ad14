package controllers

import (
	"errors"
	"net/http"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/response"
	"gorm.io/gorm"
)

// CategoryInput is the admin's category form.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	NameTamil   string `json:"name_tamil" validate:"required,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"nullable,url"`
	Active      bool   `json:"active"`
	SortOrder   int    `json:"sort_order"`
}

// AdminCategoryController is the back-office category CRUD.
type AdminCategoryController struct {
	catalog *services.CatalogService
}

func NewAdminCategoryController(catalog *services.CatalogService) *AdminCategoryController {
	return &AdminCategoryController{catalog: catalog}
}

func (c *AdminCategoryController) Index(w http.ResponseWriter, r *http.Request) {
	cats, err := c.catalog.AllCategories()
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin categories", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load categories")
		return
	}
	response.Success(w, cats)
}

func (c *AdminCategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in CategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cat := models.Category{
		Name:        in.Name,
		NameTamil:   in.NameTamil,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Active:      in.Active,
		SortOrder:   in.SortOrder,
	}
	err := c.catalog.CreateCategory(&cat)
	if errors.Is(err, services.ErrCategoryNameTaken) {
		response.Error(w, http.StatusConflict, "Category name already exists")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("category create", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create category")
		return
	}
	response.Created(w, cat)
}

func (c *AdminCategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	var in CategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cat, err := c.catalog.Category(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load category")
		return
	}

	cat.Name = in.Name
	cat.NameTamil = in.NameTamil
	cat.Description = in.Description
	cat.ImageURL = in.ImageURL
	cat.Active = in.Active
	cat.SortOrder = in.SortOrder
	if err := c.catalog.UpdateCategory(&cat); err != nil {
		logger.WithCtx(r.Context()).Error("category update", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update category")
		return
	}
	response.Success(w, cat)
}

func (c *AdminCategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	err := c.catalog.DeleteCategory(id)
	if errors.Is(err, services.ErrCategoryNotEmpty) {
		response.Error(w, http.StatusConflict, "Category still has products")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("category delete", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete category")
		return
	}
	response.Success(w, map[string]string{"message": "Category deleted"})
}
