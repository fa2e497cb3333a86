package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
)

type ProductUpdateInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	StandardPrice *float64 `json:"standard_price"`
	OfferPrice    *float64 `json:"offer_price"`
	ClearOffer    bool     `json:"clear_offer"`
	Image         *string  `json:"product_image"`
	CategoryID    *uint    `json:"category_id"`
}

// UpdateProduct updates an existing product by ID. Only the fields present in
// the body are touched. PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.StandardPrice != nil {
			if *input.StandardPrice <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "standard_price must be positive"})
				return
			}
			product.StandardPrice = *input.StandardPrice
		}
		if input.ClearOffer {
			product.OfferPrice = nil
		} else if input.OfferPrice != nil {
			product.OfferPrice = input.OfferPrice
		}
		if product.OfferPrice != nil && *product.OfferPrice >= product.StandardPrice {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offer_price must be below standard_price"})
			return
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = category.ID
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		if err := db.Preload("Category").First(&product, product.ID).Error; err == nil {
			c.JSON(http.StatusOK, product)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
