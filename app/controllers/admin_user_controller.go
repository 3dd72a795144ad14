package controllers

import (
	"errors"
	"net/http"

	"github.com/muthuvel/santhai/app/resources"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/resource"
	"github.com/muthuvel/santhai/pkg/response"
	"gorm.io/gorm"
)

// AdminUserController manages accounts and roles. Admin-only.
type AdminUserController struct {
	users *services.UserService
}

func NewAdminUserController(users *services.UserService) *AdminUserController {
	return &AdminUserController{users: users}
}

func (c *AdminUserController) Index(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)
	users, pagination, err := c.users.All(page, perPage)
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin users", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load users")
		return
	}
	resource.CollectionOf(resources.UserResource{}, users).
		WithPagination(pagination).
		Respond(w)
}

func (c *AdminUserController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.AdminUserInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.CreateWithRole(in)
	switch {
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		response.Error(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, services.ErrUnknownRole):
		response.Error(w, http.StatusBadRequest, "Unknown role")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("admin user create", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create user")
		return
	}
	response.Created(w, user)
}

// SetActive enables or disables an account. Admins cannot disable
// themselves.
func (c *AdminUserController) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	var in struct {
		Active bool `json:"active"`
	}
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if actorID, _ := middleware.UserIDFromCtx(r); actorID == id && !in.Active {
		response.Error(w, http.StatusConflict, "You cannot disable your own account")
		return
	}

	err := c.users.SetActive(id, in.Active)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin user toggle", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update user")
		return
	}
	response.Success(w, map[string]interface{}{"id": id, "active": in.Active})
}
