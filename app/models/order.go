package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. Transitions are admin-triggered; the system accepts any
// target in the allowed set except that a delivered order never changes
// again and cancelled is terminal.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusPacked     = "packed"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is the immutable snapshot created at checkout. Only Status,
// PaymentStatus, the per-stage timestamps and the tracking fields are
// mutated after creation.
type Order struct {
	gorm.Model
	OrderNumber string `gorm:"size:20;uniqueIndex;not null" json:"order_number"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`

	Subtotal       float64 `gorm:"not null" json:"subtotal"`
	TaxAmount      float64 `gorm:"not null;default:0" json:"tax_amount"`
	DeliveryCharge float64 `gorm:"not null;default:0" json:"delivery_charge"`
	Total          float64 `gorm:"not null" json:"total"`

	DeliveryName    string `gorm:"size:100;not null" json:"delivery_name"`
	DeliveryPhone   string `gorm:"size:20;not null" json:"delivery_phone"`
	DeliveryAddress string `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryCity    string `gorm:"size:50;not null" json:"delivery_city"`
	DeliveryState   string `gorm:"size:50;not null" json:"delivery_state"`
	DeliveryPincode string `gorm:"size:10;not null" json:"delivery_pincode"`

	Status        string `gorm:"size:20;default:pending;index" json:"status"`
	PaymentStatus string `gorm:"size:20;default:pending" json:"payment_status"`
	PaymentMethod string `gorm:"size:20;default:upi" json:"payment_method"`

	TrackingNumber  string `gorm:"size:100" json:"tracking_number"`
	TrackingURL     string `gorm:"size:255" json:"tracking_url"`
	DeliveryPartner string `gorm:"size:100" json:"delivery_partner"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	PackedAt    *time.Time `json:"packed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	User  User        `json:"-"`
	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is a denormalised copy of the product at order time, so later
// catalogue edits never rewrite history.
type OrderItem struct {
	gorm.Model
	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null" json:"product_id"`

	ProductName      string  `gorm:"size:200;not null" json:"product_name"`
	ProductNameTamil string  `gorm:"size:200" json:"product_name_tamil"`
	ProductSKU       string  `gorm:"size:20" json:"product_sku"`
	Unit             string  `gorm:"size:20" json:"unit"`
	Price            float64 `gorm:"not null" json:"price"`
	Quantity         float64 `gorm:"not null" json:"quantity"`
	TaxRate          float64 `gorm:"not null;default:0" json:"tax_rate"`
}

// LineTotal is the snapshot price × quantity for this line.
func (i *OrderItem) LineTotal() float64 { return i.Price * i.Quantity }
