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
	"gorm.io/gorm"
)

// CartController serves both carts: authenticated users get cart_items
// rows, anonymous visitors get a quantity map in the redis session. The
// add/update endpoints answer with the running count and total so the
// storefront header can update in place.
type CartController struct {
	carts   *services.CartService
	catalog *services.CatalogService
}

func NewCartController(carts *services.CartService, catalog *services.CatalogService) *CartController {
	return &CartController{carts: carts, catalog: catalog}
}

type cartMutation struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
}

func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	if userID, ok := middleware.UserIDFromCtx(r); ok {
		view, err := c.carts.View(userID)
		if err != nil {
			logger.WithCtx(r.Context()).Error("cart show", "error", err)
			response.Error(w, http.StatusInternalServerError, "Could not load cart")
			return
		}
		response.Success(w, view)
		return
	}

	view, err := c.anonymousView(r)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart show (anonymous)", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load cart")
		return
	}
	response.Success(w, view)
}

// Add accepts JSON or a form-encoded body; the storefront posts forms.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in cartMutation
	if errs, err := bind.Request(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if userID, ok := middleware.UserIDFromCtx(r); ok {
		if err := c.carts.Add(userID, in.ProductID, in.Quantity); err != nil {
			c.cartError(w, err)
			return
		}
		c.respondWithTotals(w, r, userID)
		return
	}

	c.anonymousAdd(w, r, in)
}

func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	itemID, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	var in struct {
		Quantity float64 `json:"quantity"`
	}
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.carts.UpdateItem(userID, itemID, in.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		c.cartError(w, err)
		return
	}
	c.respondWithTotals(w, r, userID)
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	itemID, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.carts.Remove(userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("cart remove", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	c.respondWithTotals(w, r, userID)
}

// ─────────────────────────────────────────────
// Anonymous cart
// ─────────────────────────────────────────────

func (c *CartController) anonymousAdd(w http.ResponseWriter, r *http.Request, in cartMutation) {
	p, err := c.catalog.Product(in.ProductID, false)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, "Product is not available")
		return
	}

	sess := session.FromCtx(r)
	cart := sessionCart(sess)
	newQty := cart[in.ProductID] + in.Quantity

	if err := services.ValidateQuantity(&p, newQty); err != nil {
		c.cartError(w, err)
		return
	}
	if newQty > p.Stock {
		c.cartError(w, services.ErrInsufficientStock)
		return
	}

	cart[in.ProductID] = newQty
	saveSessionCart(sess, cart)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("cart session save", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update cart")
		return
	}

	view, err := c.anonymousView(r)
	if err != nil {
		response.Success(w, map[string]interface{}{"success": true})
		return
	}
	response.Success(w, map[string]interface{}{
		"success":    true,
		"message":    "Added to cart",
		"cart_count": view.Count,
		"cart_total": view.Total,
	})
}

// anonymousView prices the session cart with current products. Lines
// whose product vanished or went inactive are skipped.
func (c *CartController) anonymousView(r *http.Request) (services.CartView, error) {
	sess := session.FromCtx(r)
	cart := sessionCart(sess)

	view := services.CartView{Items: []services.CartLine{}}
	for productID, qty := range cart {
		p, err := c.catalog.Product(productID, false)
		if err != nil {
			continue
		}
		line := services.CartLine{
			Product:  p,
			Quantity: qty,
			Subtotal: p.LineSubtotal(qty),
		}
		view.Items = append(view.Items, line)
		view.Subtotal += line.Subtotal
		view.TaxAmount += p.LineTax(qty)
	}
	view.Count = len(view.Items)

	settings, err := c.carts.Settings()
	if err != nil {
		return view, err
	}
	view.DeliveryCharge = settings.DeliveryChargeFor(view.Subtotal)
	view.Total = view.Subtotal + view.TaxAmount + view.DeliveryCharge
	return view, nil
}

func (c *CartController) respondWithTotals(w http.ResponseWriter, r *http.Request, userID uint) {
	view, err := c.carts.View(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart totals", "error", err)
		response.Success(w, map[string]interface{}{"success": true})
		return
	}
	response.Success(w, map[string]interface{}{
		"success":    true,
		"message":    "Cart updated",
		"cart_count": view.Count,
		"cart_total": view.Total,
	})
}

func (c *CartController) cartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrQuantityTooLow),
		errors.Is(err, services.ErrQuantityTooHigh),
		errors.Is(err, services.ErrQuantityStep),
		errors.Is(err, services.ErrInsufficientStock):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "Could not update cart")
	}
}
