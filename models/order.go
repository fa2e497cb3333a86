package models

import "time"

type OrderStatus string
type OrderSource string

const (
	// Order statuses (quote-style flow: orders arrive as New, the admin
	// marks them Delivered once closed over WhatsApp or phone)
	OrderStatusNew       OrderStatus = "New"
	OrderStatusDelivered OrderStatus = "Delivered"

	// Device class the order was placed from
	OrderSourceMobile  OrderSource = "Mobile"
	OrderSourceTablet  OrderSource = "Tablet"
	OrderSourceDesktop OrderSource = "Desktop"

	// Who created the record
	CreatedByCustomer = "customer"
	CreatedByAdmin    = "admin"
)

type Order struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	OrderNumber          string      `gorm:"uniqueIndex;not null" json:"order_number"`
	OrderRef             string      `gorm:"uniqueIndex" json:"order_ref"`
	OrderDetails         string      `gorm:"type:text" json:"order_details"`
	Status               OrderStatus `gorm:"type:VARCHAR(20);default:'New'" json:"status"`
	Remarks              string      `json:"remarks"`
	CustomerMobileNumber string      `json:"customer_mobile_number"` // empty when closed over WhatsApp
	OrderSource          OrderSource `gorm:"type:VARCHAR(20)" json:"order_source"`
	CreatedBy            string      `gorm:"type:VARCHAR(20)" json:"created_by"`
	TotalAmount          float64     `json:"total_amount"`
	Items                []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"cart_items"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// OrderItem is a snapshot of a cart line at submission time. Prices are
// captured here on purpose: a later catalog change must not alter the order.
type OrderItem struct {
	ID            uint     `gorm:"primaryKey" json:"-"`
	OrderID       uint     `gorm:"index" json:"-"`
	ProductID     uint     `json:"id"`
	Name          string   `json:"name"`
	CategoryID    uint     `json:"category_id"`
	CategoryName  string   `json:"category_name"`
	Quantity      int      `json:"quantity"`
	StandardPrice float64  `json:"standard_price"`
	OfferPrice    *float64 `json:"offer_price"`
	ProductImage  string   `json:"product_image"`
}

// EffectivePrice mirrors Product.EffectivePrice for the captured snapshot.
func (i OrderItem) EffectivePrice() float64 {
	if i.OfferPrice != nil && *i.OfferPrice > 0 && *i.OfferPrice < i.StandardPrice {
		return *i.OfferPrice
	}
	return i.StandardPrice
}

// Subtotal is the line total for the captured quantity.
func (i OrderItem) Subtotal() float64 {
	return i.EffectivePrice() * float64(i.Quantity)
}
