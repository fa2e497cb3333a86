package orderControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/counter"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
)

// -------- Request Structs --------

// CartItemInput is one captured cart line as the storefront submits it.
type CartItemInput struct {
	ProductID     uint     `json:"id"`
	Name          string   `json:"name" binding:"required"`
	CategoryID    uint     `json:"category_id"`
	CategoryName  string   `json:"category_name"`
	Quantity      int      `json:"quantity" binding:"required,min=1"`
	StandardPrice float64  `json:"standard_price"`
	OfferPrice    *float64 `json:"offer_price"`
	ProductImage  string   `json:"product_image"`
}

type CreateOrderRequest struct {
	OrderNumber          string          `json:"order_number"`
	OrderDetails         string          `json:"order_details"`
	Status               string          `json:"status"`
	Remarks              string          `json:"remarks"`
	CustomerMobileNumber string          `json:"customer_mobile_number"`
	OrderSource          string          `json:"order_source"`
	CreatedBy            string          `json:"created_by"`
	CartItems            []CartItemInput `json:"cart_items" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateRemarksRequest struct {
	Remarks string `json:"remarks"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case "", "new":
		return models.OrderStatusNew, nil
	case "delivered":
		return models.OrderStatusDelivered, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to OrderSource; unknown signatures count as Desktop
func mapOrderSource(source string) models.OrderSource {
	switch strings.ToLower(source) {
	case "mobile":
		return models.OrderSourceMobile
	case "tablet":
		return models.OrderSourceTablet
	default:
		return models.OrderSourceDesktop
	}
}

// -------- Core Logic --------

// CreateOrder persists a customer submission. The order number is taken from
// the request when the storefront already allocated one; otherwise the shared
// sequence is consulted, and when that too is unreachable a timestamp
// fallback is recorded so an order is never refused for lack of a number.
func CreateOrder(ctx context.Context, db *gorm.DB, seq counter.Sequence, req CreateOrderRequest) (*models.Order, error) {
	if len(req.CartItems) == 0 {
		return nil, errors.New("cart is empty")
	}
	for _, item := range req.CartItems {
		if item.Quantity < 1 {
			return nil, errors.New("invalid quantity for item: " + item.Name)
		}
	}

	status, err := mapOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	orderNumber := req.OrderNumber
	if orderNumber == "" {
		if n, seqErr := seq.Next(ctx); seqErr == nil {
			orderNumber = counter.Format(n)
		} else {
			orderNumber = counter.Fallback(time.Now())
			log.Println("⚠️ Order sequence unavailable, using fallback number:", seqErr)
		}
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = models.CreatedByCustomer
	}

	var total float64
	var items []models.OrderItem
	for _, in := range req.CartItems {
		item := models.OrderItem{
			ProductID:     in.ProductID,
			Name:          in.Name,
			CategoryID:    in.CategoryID,
			CategoryName:  in.CategoryName,
			Quantity:      in.Quantity,
			StandardPrice: in.StandardPrice,
			OfferPrice:    in.OfferPrice,
			ProductImage:  in.ProductImage,
		}
		total += item.Subtotal()
		items = append(items, item)
	}

	order := models.Order{
		OrderNumber:          orderNumber,
		OrderRef:             uuid.NewString(),
		OrderDetails:         req.OrderDetails,
		Status:               status,
		Remarks:              req.Remarks,
		CustomerMobileNumber: req.CustomerMobileNumber,
		OrderSource:          mapOrderSource(req.OrderSource),
		CreatedBy:            createdBy,
		TotalAmount:          total,
		Items:                items,
		CreatedAt:            time.Now(),
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// -------- Handlers --------

// Create order (storefront). Replies with the PHP-era success envelope the
// customer clients decode.
func CreateOrderHandler(db *gorm.DB, seq counter.Sequence) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order payload: " + err.Error()})
			return
		}
		order, err := CreateOrder(c.Request.Context(), db, seq, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "order_number": order.OrderNumber})
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			mapped, err := mapOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", mapped)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// resolveOrder looks an order up by its customer-facing number first, falling
// back to the numeric ID so older dashboard links keep working. The two-step
// lookup matters: a single "id = ? OR order_number = ?" clause lets SQL
// numeric coercion match a number like "0002" against the integer id 2 of an
// unrelated order.
func resolveOrder(db *gorm.DB, key string) (*models.Order, error) {
	tx := db.Session(&gorm.Session{})
	var order models.Order
	err := tx.Where("order_number = ?", key).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = tx.Where("id = ?", key).First(&order).Error
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Get single order by order_number or numeric ID
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, err := resolveOrder(db.Preload("Items"), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// Counts by status for the admin dashboard header
func OrderSummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type row struct {
			Status models.OrderStatus
			Count  int64
		}
		var rows []row
		if err := db.Model(&models.Order{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		summary := gin.H{"total": int64(0), "new": int64(0), "delivered": int64(0)}
		for _, r := range rows {
			summary["total"] = summary["total"].(int64) + r.Count
			switch r.Status {
			case models.OrderStatusNew:
				summary["new"] = r.Count
			case models.OrderStatusDelivered:
				summary["delivered"] = r.Count
			}
		}
		c.JSON(http.StatusOK, summary)
	}
}

// Update order status (New -> Delivered)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := resolveOrder(db, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if err := db.Model(order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// Update admin remarks
func UpdateRemarksHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateRemarksRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := resolveOrder(db, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update remarks"})
			return
		}
		if err := db.Model(order).Update("remarks", req.Remarks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update remarks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Remarks updated successfully"})
	}
}

// Delete order
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		err := db.Transaction(func(tx *gorm.DB) error {
			order, err := resolveOrder(tx, orderID)
			if err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(order).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
