package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/muthuvel/santhai/app/jobs"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/queue"
	"github.com/muthuvel/santhai/pkg/response"
	"gorm.io/gorm"
)

// AdminOrderController is the back-office order desk: listing, status
// and payment transitions, tracking, invoices and notification history.
type AdminOrderController struct {
	orders *services.OrderService
	logs   *repositories.NotificationLogRepository
}

func NewAdminOrderController(orders *services.OrderService, db *gorm.DB) *AdminOrderController {
	return &AdminOrderController{
		orders: orders,
		logs:   repositories.NewNotificationLogRepository(db),
	}
}

func (c *AdminOrderController) Index(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)
	status := r.URL.Query().Get("status")

	orders, pagination, err := c.orders.AllOrders(status, page, perPage)
	if errors.Is(err, services.ErrUnknownStatus) {
		response.Error(w, http.StatusBadRequest, "Unknown status filter")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin orders", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	response.Paginated(w, orders, pagination)
}

func (c *AdminOrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	order, err := c.orders.Order(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load order")
		return
	}

	notifications, err := c.logs.ByOrder(id)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("order notification log", "id", id, "error", err)
	}
	response.Success(w, map[string]interface{}{
		"order":         order,
		"notifications": notifications,
	})
}

func (c *AdminOrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(id, in.Status)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(w)
		return
	case errors.Is(err, services.ErrUnknownStatus):
		response.Error(w, http.StatusBadRequest, "Unknown status")
		return
	case errors.Is(err, services.ErrOrderDelivered), errors.Is(err, services.ErrOrderCancelled):
		response.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		// Status may have been saved with only the invoice failing;
		// surface that to the operator.
		logger.WithCtx(r.Context()).Error("order status", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, order)
}

func (c *AdminOrderController) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	var in struct {
		PaymentStatus string `json:"payment_status" validate:"required,in=pending,paid,failed"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdatePaymentStatus(id, in.PaymentStatus)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("order payment", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update payment status")
		return
	}
	response.Success(w, order)
}

func (c *AdminOrderController) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	var in struct {
		TrackingNumber  string `json:"tracking_number" validate:"required,max=100"`
		TrackingURL     string `json:"tracking_url" validate:"nullable,url"`
		DeliveryPartner string `json:"delivery_partner" validate:"nullable,max=100"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateTracking(id, in.TrackingNumber, in.TrackingURL, in.DeliveryPartner)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("order tracking", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update tracking")
		return
	}
	response.Success(w, order)
}

func (c *AdminOrderController) Invoice(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	order, err := c.orders.Order(id)
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
		logger.WithCtx(r.Context()).Error("admin invoice", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not render invoice")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=invoice_%s.html", order.OrderNumber))
	w.Write(doc) //nolint:errcheck
}

// Resend queues the confirmation notification again, e.g. after fixing
// SMTP settings.
func (c *AdminOrderController) Resend(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	if _, err := c.orders.Order(id); err != nil {
		response.NotFound(w)
		return
	}

	if err := queue.Dispatch(&jobs.OrderPlacedJob{OrderID: id}); err != nil {
		logger.WithCtx(r.Context()).Error("order resend", "id", id, "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not queue notification")
		return
	}
	response.Success(w, map[string]string{"message": "Notification queued"})
}
