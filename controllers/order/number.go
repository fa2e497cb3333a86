package orderControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/counter"
)

// GET /orders/number
// Hands out the next sequential order number. When the sequence is down this
// replies with a failure envelope and the storefront synthesizes its own
// fallback number; the server never blocks checkout on the sequence.
func GenerateOrderNumberHandler(seq counter.Sequence) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := seq.Next(c.Request.Context())
		if err != nil {
			log.Println("❌ Failed to allocate order number:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Order number sequence unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order_number": counter.Format(n)})
	}
}
