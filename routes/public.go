package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/controllers/order"
	productControllers "github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/controllers/product"
	settingsControllers "github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/controllers/settings"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/counter"
)

// SetupPublicRoutes registers everything the storefront calls without a
// session: catalog reads, settings, and the checkout endpoints.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, seq counter.Sequence) {
	// ──────────────── Catalog ────────────────
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))
	}

	categories := r.Group("/categories")
	{
		categories.GET("", productControllers.GetAllCategories(db))
		categories.GET("/:id", productControllers.GetCategoryByID(db))
	}

	// ──────────────── Checkout ────────────────
	orders := r.Group("/orders")
	{
		orders.POST("", orderControllers.CreateOrderHandler(db, seq))
		orders.GET("/number", orderControllers.GenerateOrderNumberHandler(seq))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
	}

	// ──────────────── Settings ────────────────
	r.GET("/settings", settingsControllers.GetSettingsHandler(db))
}
