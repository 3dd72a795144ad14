package models

import "gorm.io/gorm"

// Roles assignable to a User. Storekeepers can manage catalogue and orders;
// only admins can manage users, communications, and settings.
const (
	RoleCustomer    = "customer"
	RoleStorekeeper = "storekeeper"
	RoleAdmin       = "admin"
)

// User is the primary user model.
type User struct {
	gorm.Model
	Username  string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	FirstName string `gorm:"size:50" json:"first_name"`
	LastName  string `gorm:"size:50" json:"last_name"`
	Phone     string `gorm:"size:20" json:"phone"`
	Role      string `gorm:"size:20;default:customer;index" json:"role"`
	Active    bool   `gorm:"default:true" json:"active"`

	Addresses []Address `gorm:"constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
}

// DisplayName returns "First Last" when both are set, else the username.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsStorekeeper reports whether the user may access the back office.
func (u *User) IsStorekeeper() bool {
	return u.Role == RoleAdmin || u.Role == RoleStorekeeper
}

// Address is a saved delivery address. At most one per user is the default.
type Address struct {
	gorm.Model
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Phone        string `gorm:"size:20;not null" json:"phone"`
	AddressLine1 string `gorm:"type:text;not null" json:"address_line1"`
	AddressLine2 string `gorm:"type:text" json:"address_line2"`
	City         string `gorm:"size:50;not null" json:"city"`
	State        string `gorm:"size:50;not null" json:"state"`
	Pincode      string `gorm:"size:10;not null" json:"pincode"`
	IsDefault    bool   `gorm:"default:false" json:"is_default"`
}
