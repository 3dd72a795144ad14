package controllers

import (
	"net/http"

	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/response"
)

// ProfileController covers the account page: profile fields and the
// address book.
type ProfileController struct {
	users *services.UserService
}

func NewProfileController(users *services.UserService) *ProfileController {
	return &ProfileController{users: users}
}

func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProfileInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID, _ := middleware.UserIDFromCtx(r)
	user, err := c.users.UpdateProfile(userID, in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("profile update", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update profile")
		return
	}
	response.Success(w, user)
}

func (c *ProfileController) Addresses(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	addrs, err := c.users.Addresses(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("addresses list", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load addresses")
		return
	}
	response.Success(w, addrs)
}

func (c *ProfileController) AddAddress(w http.ResponseWriter, r *http.Request) {
	var in services.AddressInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID, _ := middleware.UserIDFromCtx(r)
	addr, err := c.users.AddAddress(userID, in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("address create", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not save address")
		return
	}
	response.Created(w, addr)
}
