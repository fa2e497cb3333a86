package settingsControllers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Selvags2020/DaddyChipsFullyMigratedToMySQL/models"
)

// WhatsApp numbers are stored in international form without the plus sign.
var whatsAppNumberRe = regexp.MustCompile(`^\d{10,15}$`)

type UpdateSettingsRequest struct {
	BusinessWhatsAppNumber string `json:"BusinessWhatsAppNumber" binding:"required"`
}

// GET /settings
// Public: the storefront needs the business WhatsApp number to open the
// checkout deep link. Replies with the success envelope the clients decode.
func GetSettingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		number, err := models.GetSetting(db, models.SettingBusinessWhatsAppNumber)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{models.SettingBusinessWhatsAppNumber: number},
		})
	}
}

// PUT /admin/settings
func UpdateSettingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "BusinessWhatsAppNumber is required"})
			return
		}
		if !whatsAppNumberRe.MatchString(req.BusinessWhatsAppNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please enter a valid WhatsApp number (10-15 digits)"})
			return
		}
		if err := models.PutSetting(db, models.SettingBusinessWhatsAppNumber, req.BusinessWhatsAppNumber); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated"})
	}
}
