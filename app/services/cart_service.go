package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/repositories"
	"github.com/muthuvel/santhai/pkg/logger"
	"gorm.io/gorm"
)

// Cart errors.
var (
	ErrProductUnavailable = errors.New("cart: product is not available")
	ErrQuantityTooLow     = errors.New("cart: quantity below the minimum")
	ErrQuantityTooHigh    = errors.New("cart: quantity above the maximum")
	ErrQuantityStep       = errors.New("cart: quantity not aligned to the step")
	ErrInsufficientStock  = errors.New("cart: not enough stock")
)

// SessionCart is the anonymous cart kept in the redis-backed session:
// product ID to quantity. It is merged into cart_items rows at login or
// checkout.
type SessionCart map[uint]float64

// CartView is the rendered cart with totals, built against current prices
// and the current delivery settings.
type CartView struct {
	Items          []CartLine `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	TaxAmount      float64    `json:"tax_amount"`
	DeliveryCharge float64    `json:"delivery_charge"`
	Total          float64    `json:"total"`
	Count          int        `json:"count"`
}

// CartLine is one product in the cart with its line totals.
type CartLine struct {
	ItemID   uint           `json:"item_id"`
	Product  models.Product `json:"product"`
	Quantity float64        `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// MergeReject reports a session-cart line that could not be merged.
type MergeReject struct {
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Reason    string  `json:"reason"`
}

// CartService manages the authenticated cart and the merge of anonymous
// session carts into it.
type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
	settings *SettingsService
}

func NewCartService(db *gorm.DB, settings *SettingsService) *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(db),
		products: repositories.NewProductRepository(db),
		settings: settings,
	}
}

// Settings exposes the current store settings for callers that price a
// session cart outside the service.
func (s *CartService) Settings() (models.StoreSettings, error) {
	return s.settings.Get()
}

// ValidateQuantity checks qty against the product's ordering bounds.
// It does not look at stock; callers check stock against the quantity
// that would end up in the cart.
func ValidateQuantity(p *models.Product, qty float64) error {
	if qty < p.MinQuantity {
		return ErrQuantityTooLow
	}
	if qty > p.MaxQuantity {
		return ErrQuantityTooHigh
	}
	if p.QuantityStep > 0 {
		steps := qty / p.QuantityStep
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			return ErrQuantityStep
		}
	}
	return nil
}

// Add puts qty of a product into the user's cart, summing with any
// existing line. The summed quantity must stay within bounds and stock.
func (s *CartService) Add(userID, productID uint, qty float64) error {
	p, err := s.products.FindByID(productID)
	if err != nil {
		return ErrProductUnavailable
	}
	if !p.Active {
		return ErrProductUnavailable
	}

	newQty := qty
	existing, err := s.carts.FindItem(userID, productID)
	haveLine := err == nil
	if haveLine {
		newQty += existing.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart: load line: %w", err)
	}

	if err := ValidateQuantity(&p, newQty); err != nil {
		return err
	}
	if newQty > p.Stock {
		return ErrInsufficientStock
	}

	if haveLine {
		existing.Quantity = newQty
		return s.carts.Update(&existing)
	}
	return s.carts.Create(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  newQty,
	})
}

// UpdateItem sets a cart line to an absolute quantity. Zero or negative
// removes the line.
func (s *CartService) UpdateItem(userID, itemID uint, qty float64) error {
	item, err := s.carts.FindItemByID(userID, itemID)
	if err != nil {
		return err
	}

	if qty <= 0 {
		return s.carts.Delete(&item)
	}

	if err := ValidateQuantity(&item.Product, qty); err != nil {
		return err
	}
	if qty > item.Product.Stock {
		return ErrInsufficientStock
	}

	item.Quantity = qty
	return s.carts.Update(&item)
}

// Remove deletes one cart line.
func (s *CartService) Remove(userID, itemID uint) error {
	item, err := s.carts.FindItemByID(userID, itemID)
	if err != nil {
		return err
	}
	return s.carts.Delete(&item)
}

// View builds the cart with line and order totals at current prices.
func (s *CartService) View(userID uint) (CartView, error) {
	items, err := s.carts.ItemsByUser(userID)
	if err != nil {
		return CartView{}, fmt.Errorf("cart: load: %w", err)
	}

	settings, err := s.settings.Get()
	if err != nil {
		return CartView{}, err
	}

	view := CartView{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		line := CartLine{
			ItemID:   item.ID,
			Product:  item.Product,
			Quantity: item.Quantity,
			Subtotal: item.Product.LineSubtotal(item.Quantity),
		}
		view.Items = append(view.Items, line)
		view.Subtotal += line.Subtotal
		view.TaxAmount += item.Product.LineTax(item.Quantity)
	}
	view.Count = len(view.Items)
	view.DeliveryCharge = settings.DeliveryChargeFor(view.Subtotal)
	view.Total = view.Subtotal + view.TaxAmount + view.DeliveryCharge
	return view, nil
}

// Merge folds an anonymous session cart into the user's persisted cart.
// Quantities add; a line whose sum would break stock or bounds is left at
// its pre-merge value and reported in the rejects. Merge never fails the
// login or checkout that triggered it.
func (s *CartService) Merge(userID uint, sc SessionCart) []MergeReject {
	var rejects []MergeReject
	for productID, qty := range sc {
		if qty <= 0 {
			continue
		}
		if err := s.Add(userID, productID, qty); err != nil {
			logger.Warn("cart: merge line rejected",
				"user_id", userID, "product_id", productID, "error", err)
			rejects = append(rejects, MergeReject{
				ProductID: productID,
				Quantity:  qty,
				Reason:    err.Error(),
			})
		}
	}
	return rejects
}
