package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/response"
	"gorm.io/gorm"
)

// OrderController is the customer's order history: list, detail and
// invoice download, always scoped to the authenticated user.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	page, perPage := pageParams(r)

	orders, pagination, err := c.orders.OrdersForUser(userID, page, perPage)
	if err != nil {
		logger.WithCtx(r.Context()).Error("orders index", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	response.Paginated(w, orders, pagination)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	userID, _ := middleware.UserIDFromCtx(r)

	order, err := c.orders.OrderForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("order show", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load order")
		return
	}
	response.Success(w, order)
}

// Invoice streams the invoice document for one of the user's own orders.
func (c *OrderController) Invoice(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	userID, _ := middleware.UserIDFromCtx(r)

	order, err := c.orders.OrderForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load order")
		return
	}

	doc, err := c.orders.Invoice(order)
	if err != nil {
		logger.WithCtx(r.Context()).Error("order invoice", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not render invoice")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=invoice_%s.html", order.OrderNumber))
	w.Write(doc) //nolint:errcheck
}
