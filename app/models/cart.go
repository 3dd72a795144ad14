package models

import "gorm.io/gorm"

// CartItem is one pending selection for an authenticated user. Anonymous
// visitors keep their cart in the session instead (product id to quantity);
// those quantities are merged into rows like this at login or checkout.
//
// A user has at most one row per product (uniqueIndex on the pair).
type CartItem struct {
	gorm.Model
	UserID    uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  float64 `gorm:"not null" json:"quantity"`

	Product Product `json:"product,omitempty"`
}
