package models

import "gorm.io/gorm"

// Category groups products on the storefront. NameTamil carries the
// bilingual label shown alongside the English name.
type Category struct {
	gorm.Model
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	NameTamil   string `gorm:"size:100;not null" json:"name_tamil"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:255" json:"image_url"`
	Active      bool   `gorm:"default:true;index" json:"active"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`

	Products []Product `json:"-"`
}
