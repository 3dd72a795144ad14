package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/event"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/orm"
	"gorm.io/gorm"
)

// Order lifecycle errors.
var (
	ErrUnknownStatus    = errors.New("order: unknown status")
	ErrOrderDelivered   = errors.New("order: delivered orders cannot change")
	ErrOrderCancelled   = errors.New("order: cancelled orders cannot change")
	ErrUnknownPayStatus = errors.New("order: unknown payment status")
)

// OrderStatusChanged is the payload fired on every status transition.
type OrderStatusChanged struct {
	OrderID uint
	From    string
	To      string
}

// OrderService handles order reads and the admin-driven status machine.
// Any target status in the allowed set is accepted except that delivered
// and cancelled are terminal.
type OrderService struct {
	orders   *repositories.OrderRepository
	invoices *InvoiceService
}

func NewOrderService(db *gorm.DB, invoices *InvoiceService) *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(db),
		invoices: invoices,
	}
}

// ─────────────────────────────────────────────
// Reads
// ─────────────────────────────────────────────

// Order returns one order with its items.
func (s *OrderService) Order(id uint) (models.Order, error) {
	return s.orders.FindByID(id)
}

// OrderForUser returns an order only when the user owns it.
func (s *OrderService) OrderForUser(id, userID uint) (models.Order, error) {
	return s.orders.FindForUser(id, userID)
}

// OrdersForUser lists the user's orders newest-first.
func (s *OrderService) OrdersForUser(userID uint, page, perPage int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ByUser(userID, page, perPage)
}

// AllOrders lists every order, optionally filtered by status.
func (s *OrderService) AllOrders(status string, page, perPage int) ([]models.Order, orm.Pagination, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, orm.Pagination{}, ErrUnknownStatus
	}
	return s.orders.All(status, page, perPage)
}

// ─────────────────────────────────────────────
// Status machine
// ─────────────────────────────────────────────

// UpdateStatus moves an order to the target status, stamping the matching
// timestamp. Delivered and cancelled orders refuse any further change.
// Entering delivered generates the invoice; a render failure is reported
// to the caller but the status change stands.
func (s *OrderService) UpdateStatus(orderID uint, target string) (models.Order, error) {
	if !models.ValidOrderStatus(target) {
		return models.Order{}, ErrUnknownStatus
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, err
	}

	switch order.Status {
	case models.OrderStatusDelivered:
		return models.Order{}, ErrOrderDelivered
	case models.OrderStatusCancelled:
		return models.Order{}, ErrOrderCancelled
	}
	if order.Status == target {
		return order, nil
	}

	from := order.Status
	order.Status = target

	now := time.Now()
	switch target {
	case models.OrderStatusConfirmed:
		order.ConfirmedAt = &now
	case models.OrderStatusPacked:
		order.PackedAt = &now
	case models.OrderStatusShipped:
		order.ShippedAt = &now
	case models.OrderStatusDelivered:
		order.DeliveredAt = &now
	}

	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, fmt.Errorf("order: update status: %w", err)
	}

	event.Fire("order.status_changed", OrderStatusChanged{
		OrderID: order.ID,
		From:    from,
		To:      target,
	})

	if target == models.OrderStatusDelivered {
		if _, err := s.invoices.Generate(order); err != nil {
			logger.Error("order: invoice generation failed",
				"order_number", order.OrderNumber, "error", err)
			return order, fmt.Errorf("order: status updated but invoice failed: %w", err)
		}
	}
	return order, nil
}

// UpdatePaymentStatus sets the admin-controlled payment status.
func (s *OrderService) UpdatePaymentStatus(orderID uint, status string) (models.Order, error) {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
	default:
		return models.Order{}, ErrUnknownPayStatus
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	order.PaymentStatus = status
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, fmt.Errorf("order: update payment: %w", err)
	}
	return order, nil
}

// UpdateTracking sets the shipment tracking details.
func (s *OrderService) UpdateTracking(orderID uint, number, url, partner string) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	order.TrackingNumber = number
	order.TrackingURL = url
	order.DeliveryPartner = partner
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, fmt.Errorf("order: update tracking: %w", err)
	}
	return order, nil
}

// Invoice returns the invoice document for an order, rendering it when
// it has not been generated yet.
func (s *OrderService) Invoice(order models.Order) ([]byte, error) {
	return s.invoices.Fetch(order)
}
