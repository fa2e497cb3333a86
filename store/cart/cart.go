// Package cart holds the storefront's local shopping cart: line items with
// prices captured at add-time, persisted to a JSON snapshot file after every
// mutation so the cart survives restarts the way a browser cart survives a
// page reload.
package cart

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
)

// LineItem is one product entry with its quantity and captured prices. A
// catalog price change never reaches items already in the cart. The JSON tags
// line up with the order-submission payload the server accepts.
type LineItem struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	CategoryID    uint     `json:"category_id"`
	CategoryName  string   `json:"category_name"`
	Quantity      int      `json:"quantity"`
	StandardPrice float64  `json:"standard_price"`
	OfferPrice    *float64 `json:"offer_price"`
	ProductImage  string   `json:"product_image"`
}

// EffectivePrice is the unit price actually charged: the offer price when one
// is set and beats the standard price, the standard price otherwise.
func (i LineItem) EffectivePrice() float64 {
	if i.OfferPrice != nil && *i.OfferPrice > 0 && *i.OfferPrice < i.StandardPrice {
		return *i.OfferPrice
	}
	return i.StandardPrice
}

// Subtotal is the line total for the current quantity.
func (i LineItem) Subtotal() float64 {
	return i.EffectivePrice() * float64(i.Quantity)
}

// Store owns the ordered line-item collection, at most one item per product
// id. Not safe for concurrent use; the storefront drives it from one
// goroutine.
type Store struct {
	path  string
	items []LineItem
}

// Open loads the cart persisted at path. An absent or unparsable file yields
// an empty cart, never an error: a corrupt snapshot must not break startup.
func Open(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return s
	}
	// Drop any lines a corrupt snapshot may carry with impossible quantities
	for _, item := range items {
		if item.Quantity >= 1 {
			s.items = append(s.items, item)
		}
	}
	return s
}

// Add puts quantity units of product in the cart, capturing its current
// prices. A quantity below 1 is a no-op. Adding a product already present
// increments the existing line instead of duplicating it.
func (s *Store) Add(product models.Product, quantity int) error {
	if quantity < 1 {
		return nil
	}
	for idx := range s.items {
		if s.items[idx].ID == product.ID {
			s.items[idx].Quantity += quantity
			return s.persist()
		}
	}
	s.items = append(s.items, LineItem{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		CategoryID:    product.CategoryID,
		CategoryName:  product.Category.Name,
		Quantity:      quantity,
		StandardPrice: product.StandardPrice,
		OfferPrice:    product.OfferPrice,
		ProductImage:  product.Image,
	})
	return s.persist()
}

// Remove drops the line for productID if present.
func (s *Store) Remove(productID uint) error {
	for idx := range s.items {
		if s.items[idx].ID == productID {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return s.persist()
		}
	}
	return nil
}

// SetQuantity overwrites the quantity for productID. A value below 1 removes
// the line; an unknown id is a no-op.
func (s *Store) SetQuantity(productID uint, quantity int) error {
	if quantity < 1 {
		return s.Remove(productID)
	}
	for idx := range s.items {
		if s.items[idx].ID == productID {
			s.items[idx].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.items = nil
	return s.persist()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the sum of quantities across all lines.
func (s *Store) Count() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of line subtotals at effective prices.
func (s *Store) Total() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
