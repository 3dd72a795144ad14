package controllers

import (
	"errors"
	"net/http"

	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/response"
	"github.com/muthuvel/santhai/pkg/session"
)

// CheckoutController drives the checkout page and order placement.
// Checkout requires authentication; any session cart left over from
// before login is merged first so nothing gets lost.
type CheckoutController struct {
	checkout *services.CheckoutService
	carts    *services.CartService
	users    *services.UserService
}

func NewCheckoutController(checkout *services.CheckoutService, carts *services.CartService, users *services.UserService) *CheckoutController {
	return &CheckoutController{checkout: checkout, carts: carts, users: users}
}

// Show returns the checkout summary: cart with totals plus the default
// delivery address to prefill the form.
func (c *CheckoutController) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	rejects := c.mergeSessionCart(w, r, userID)

	view, err := c.carts.View(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("checkout show", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load checkout")
		return
	}
	if view.Count == 0 {
		response.Error(w, http.StatusUnprocessableEntity, "Your cart is empty")
		return
	}

	body := map[string]interface{}{"cart": view}
	if len(rejects) > 0 {
		body["cart_rejects"] = rejects
	}
	if addr, err := c.users.DefaultAddress(userID); err == nil {
		body["default_address"] = addr
	}
	response.Success(w, body)
}

// Place creates the order.
func (c *CheckoutController) Place(w http.ResponseWriter, r *http.Request) {
	var in services.CheckoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID, _ := middleware.UserIDFromCtx(r)
	rejects := c.mergeSessionCart(w, r, userID)

	order, err := c.checkout.PlaceOrder(userID, in)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		response.Error(w, http.StatusUnprocessableEntity, "Your cart is empty")
		return
	case errors.Is(err, services.ErrStockChanged):
		response.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("checkout place", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not place order")
		return
	}

	body := map[string]interface{}{
		"order":        order,
		"order_number": order.OrderNumber,
	}
	if len(rejects) > 0 {
		body["cart_rejects"] = rejects
	}
	response.Created(w, body)
}

// mergeSessionCart folds the session cart into the user's database cart
// and reports the lines the merge refused, same as the login flow does.
func (c *CheckoutController) mergeSessionCart(w http.ResponseWriter, r *http.Request, userID uint) []services.MergeReject {
	sess := session.FromCtx(r)
	sc := sessionCart(sess)
	if len(sc) == 0 {
		return nil
	}
	rejects := c.carts.Merge(userID, sc)
	clearSessionCart(sess)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("checkout: session save", "error", err)
	}
	return rejects
}
