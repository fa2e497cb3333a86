package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	StandardPrice float64        `gorm:"not null" json:"standard_price"` // Required
	OfferPrice    *float64       `json:"offer_price"`                    // Discounted price, optional
	Image         string         `json:"product_image"`
	CategoryID    uint           `gorm:"index" json:"category_id"`
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivePrice is the unit price actually charged: the offer price when one
// is set and beats the standard price, the standard price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.OfferPrice != nil && *p.OfferPrice > 0 && *p.OfferPrice < p.StandardPrice {
		return *p.OfferPrice
	}
	return p.StandardPrice
}
