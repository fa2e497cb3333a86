package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/controllers/admin"
	orderControllers "github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/controllers/order"
	productControllers "github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/controllers/product"
	settingsControllers "github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/controllers/settings"
	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a JWT with the
// Admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── Admin Management ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.POST("/admins", adminController.CreateAdmin(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.POST("/import-excel", productControllers.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db))
			categoryAdmin.GET("", productControllers.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/summary", orderControllers.OrderSummaryHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/remarks", orderControllers.UpdateRemarksHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// ─────────── Settings ───────────
		adminGroup.PUT("/settings", settingsControllers.UpdateSettingsHandler(db))
	}
}
