package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/pkg/event"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Checkout errors.
var (
	ErrEmptyCart    = errors.New("checkout: cart is empty")
	ErrStockChanged = errors.New("checkout: a product is out of stock")
)

var (
	ordersPlaced = metrics.NewCounter("santhai", "orders_placed_total",
		"Orders successfully placed.", nil)
	orderValue = metrics.NewHistogram("santhai", "order_value_rupees",
		"Grand total of placed orders.",
		[]float64{100, 250, 500, 1000, 2500, 5000}, nil)
	stockRejections = metrics.NewCounter("santhai", "checkout_stock_rejections_total",
		"Checkouts aborted because a product ran out mid-purchase.", nil)
)

const orderNumberAttempts = 3

// CheckoutInput is the delivery information submitted at checkout.
type CheckoutInput struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Phone         string `json:"phone" validate:"required,min=10,max=15"`
	Address       string `json:"address" validate:"required,min=10"`
	City          string `json:"city" validate:"required,max=50"`
	State         string `json:"state" validate:"required,max=50"`
	Pincode       string `json:"pincode" validate:"required,digits=6"`
	PaymentMethod string `json:"payment_method" validate:"required,in=upi,cod,bank"`
}

// CheckoutService turns a cart into an order inside one transaction.
//
// The transaction recomputes every line from current product prices,
// verifies stock, decrements it, snapshots the lines into order items,
// creates the order and clears the cart. Any failure rolls back the
// whole thing; no order row and no stock movement survive.
type CheckoutService struct {
	db       *gorm.DB
	settings *SettingsService
}

func NewCheckoutService(db *gorm.DB, settings *SettingsService) *CheckoutService {
	return &CheckoutService{db: db, settings: settings}
}

// OrderPlaced is the payload fired after a successful checkout.
type OrderPlaced struct {
	OrderID uint
}

// PlaceOrder creates an order from the user's cart. A unique-index
// collision on order_number (two checkouts racing for the same same-day
// sequence) rolls back and retries with a fresh sequence.
func (s *CheckoutService) PlaceOrder(userID uint, in CheckoutInput) (models.Order, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return models.Order{}, err
	}

	var order models.Order
	for attempt := 1; ; attempt++ {
		order, err = s.placeOrderTx(userID, in, settings)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < orderNumberAttempts {
			logger.Warn("checkout: order number collision, retrying",
				"user_id", userID, "attempt", attempt)
			continue
		}
		if errors.Is(err, ErrStockChanged) {
			stockRejections.WithLabelValues().Inc()
		}
		return models.Order{}, err
	}

	ordersPlaced.WithLabelValues().Inc()
	orderValue.WithLabelValues().Observe(order.Total)
	event.Fire("order.placed", OrderPlaced{OrderID: order.ID})
	return order, nil
}

func (s *CheckoutService) placeOrderTx(userID uint, in CheckoutInput, settings models.StoreSettings) (models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			return fmt.Errorf("checkout: load cart: %w", err)
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		var (
			subtotal float64
			tax      float64
			items    []models.OrderItem
		)
		for _, line := range cartItems {
			// Row locks keep two checkouts from overselling the same
			// product. sqlite has no FOR UPDATE in its grammar; it
			// serialises writers on its own.
			q := tx
			if tx.Dialector.Name() != "sqlite" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var p models.Product
			if err := q.First(&p, line.ProductID).Error; err != nil {
				return fmt.Errorf("checkout: load product %d: %w", line.ProductID, err)
			}
			if !p.Active || line.Quantity > p.Stock {
				return fmt.Errorf("%w: %s", ErrStockChanged, p.Name)
			}

			if err := tx.Model(&models.Product{}).Where("id = ?", p.ID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				return fmt.Errorf("checkout: decrement stock: %w", err)
			}

			subtotal += p.LineSubtotal(line.Quantity)
			tax += p.LineTax(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID:        p.ID,
				ProductName:      p.Name,
				ProductNameTamil: p.NameTamil,
				ProductSKU:       p.SKU,
				Unit:             p.Unit,
				Price:            p.Price,
				Quantity:         line.Quantity,
				TaxRate:          p.TaxRate,
			})
		}

		number, err := nextOrderNumber(tx, settings.InvoicePrefix)
		if err != nil {
			return err
		}

		delivery := settings.DeliveryChargeFor(subtotal)
		order = models.Order{
			OrderNumber:     number,
			UserID:          userID,
			Subtotal:        subtotal,
			TaxAmount:       tax,
			DeliveryCharge:  delivery,
			Total:           subtotal + tax + delivery,
			DeliveryName:    in.Name,
			DeliveryPhone:   in.Phone,
			DeliveryAddress: in.Address,
			DeliveryCity:    in.City,
			DeliveryState:   in.State,
			DeliveryPincode: in.Pincode,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			PaymentMethod:   in.PaymentMethod,
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("checkout: clear cart: %w", err)
		}
		return nil
	})

	return order, err
}

// nextOrderNumber builds prefix + yyyymmdd + a 4-digit same-day sequence.
// The uniqueIndex on order_number is the real guarantee; a race on the
// count shows up as a duplicate-key error and the caller retries.
func nextOrderNumber(tx *gorm.DB, prefix string) (string, error) {
	if prefix == "" {
		prefix = "SAN"
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var n int64
	if err := tx.Model(&models.Order{}).
		Where("created_at >= ?", midnight).Count(&n).Error; err != nil {
		return "", fmt.Errorf("checkout: count today's orders: %w", err)
	}

	return fmt.Sprintf("%s%s%04d", prefix, now.Format("20060102"), n+1), nil
}
