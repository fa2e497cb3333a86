package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
)

type ProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	StandardPrice float64  `json:"standard_price" binding:"required,gt=0"`
	OfferPrice    *float64 `json:"offer_price"`
	Image         string   `json:"product_image"`
	CategoryID    uint     `json:"category_id" binding:"required"`
}

// CreateProduct creates a new catalog product. POST /admin/products
// Images are plain URLs here; upload hosting is handled outside this API.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.OfferPrice != nil && *input.OfferPrice >= input.StandardPrice {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offer_price must be below standard_price"})
			return
		}

		// Category must exist
		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
			return
		}

		newProduct := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			StandardPrice: input.StandardPrice,
			OfferPrice:    input.OfferPrice,
			Image:         input.Image,
			CategoryID:    category.ID,
		}

		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		newProduct.Category = category

		c.JSON(http.StatusCreated, newProduct)
	}
}
