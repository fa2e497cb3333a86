package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/counter"
)

// SetupRoutes is the single entry-point that wires up the public storefront,
// auth, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, seq counter.Sequence) {
	// 1️⃣ Public storefront routes (no middleware)
	SetupPublicRoutes(r, db, seq)

	// 2️⃣ Auth routes
	SetupAuthRoutes(r, db)

	// 3️⃣ Admin back-office routes (JWT-protected)
	SetupAdminRoutes(r, db)
}
