package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/response"
	"github.com/muthuvel/santhai/pkg/session"
	"gorm.io/gorm"
)

// AuthController handles registration, login and logout. A successful
// login sets the JWT cookie and folds any anonymous session cart into
// the user's persisted cart.
type AuthController struct {
	auth  *services.AuthService
	users *services.UserService
	carts *services.CartService
}

func NewAuthController(db *gorm.DB, carts *services.CartService) *AuthController {
	return &AuthController{
		auth:  services.NewAuthService(db),
		users: services.NewUserService(db),
		carts: carts,
	}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, pair, err := c.auth.Register(in)
	switch {
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		response.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.setAuthCookie(w, pair.Token)
	c.mergeCart(w, r, user.ID)
	response.Created(w, map[string]interface{}{
		"user":          user,
		"token":         pair.Token,
		"refresh_token": pair.RefreshToken,
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, pair, err := c.auth.Login(in.Identifier, in.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case errors.Is(err, services.ErrAccountDisabled):
		response.Error(w, http.StatusForbidden, "Account is disabled")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	c.setAuthCookie(w, pair.Token)
	rejects := c.mergeCart(w, r, user.ID)

	body := map[string]interface{}{
		"user":          user,
		"token":         pair.Token,
		"refresh_token": pair.RefreshToken,
	}
	if len(rejects) > 0 {
		body["cart_rejects"] = rejects
	}
	response.Success(w, body)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	if sess := session.FromCtx(r); sess != nil {
		sess.Invalidate()
		sess.Save(w) //nolint:errcheck
	}
	response.Success(w, map[string]string{"message": "Logged out"})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	user, err := c.users.User(userID)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, user)
}

func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID, _ := middleware.UserIDFromCtx(r)
	err := c.auth.ChangePassword(userID, in.CurrentPassword, in.NewPassword)
	if errors.Is(err, services.ErrWrongPassword) {
		response.Error(w, http.StatusUnprocessableEntity, "Current password is wrong")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("change password failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not change password")
		return
	}
	response.Success(w, map[string]string{"message": "Password changed"})
}

func (c *AuthController) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// mergeCart folds the anonymous session cart into the freshly
// authenticated user's cart. Best effort; rejects are returned to the
// caller, never an error.
func (c *AuthController) mergeCart(w http.ResponseWriter, r *http.Request, userID uint) []services.MergeReject {
	sess := session.FromCtx(r)
	sc := sessionCart(sess)
	if len(sc) == 0 {
		return nil
	}
	rejects := c.carts.Merge(userID, sc)
	clearSessionCart(sess)
	if err := sess.Save(w); err != nil {
		logger.Warn("auth: session save after merge", "error", err)
	}
	return rejects
}
