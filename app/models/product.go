package models

import "gorm.io/gorm"

// Product represents a product in the catalogue. Quantities are measured in
// the product's Unit (kg by default for a grocery store), so they are floats:
// 0.25 means 250g. MinQuantity, MaxQuantity and QuantityStep bound what a
// customer may order in a single cart line.
type Product struct {
	gorm.Model
	SKU              string  `gorm:"size:20;uniqueIndex;not null" json:"sku"`
	Name             string  `gorm:"size:200;not null;index" json:"name"`
	NameTamil        string  `gorm:"size:200" json:"name_tamil"`
	Description      string  `gorm:"type:text" json:"description"`
	DescriptionTamil string  `gorm:"type:text" json:"description_tamil"`
	CategoryID       uint    `gorm:"not null;index" json:"category_id"`
	Price            float64 `gorm:"not null;default:0" json:"price"`
	Stock            float64 `gorm:"not null;default:0" json:"stock"`
	MinQuantity      float64 `gorm:"not null;default:0.25" json:"min_quantity"`
	MaxQuantity      float64 `gorm:"not null;default:5" json:"max_quantity"`
	QuantityStep     float64 `gorm:"not null;default:0.25" json:"quantity_step"`
	Unit             string  `gorm:"size:20;default:kg" json:"unit"`
	UnitTamil        string  `gorm:"size:20" json:"unit_tamil"`
	TaxRate          float64 `gorm:"not null;default:0" json:"tax_rate"` // GST percentage
	ImageURL         string  `gorm:"size:255" json:"image_url"`
	Active           bool    `gorm:"default:true;index" json:"active"`
	Featured         bool    `gorm:"default:false" json:"featured"`

	Category Category `json:"category,omitempty"`
}

// LineSubtotal is price × quantity for a given cart or order line.
func (p *Product) LineSubtotal(qty float64) float64 {
	return p.Price * qty
}

// LineTax is the tax owed on a line at the product's rate.
func (p *Product) LineTax(qty float64) float64 {
	return p.Price * qty * p.TaxRate / 100
}
