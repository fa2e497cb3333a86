package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known setting keys.
const (
	SettingBusinessWhatsAppNumber = "BusinessWhatsAppNumber"
)

type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetSetting returns the stored value for key, or "" when absent.
func GetSetting(db *gorm.DB, key string) (string, error) {
	var s Setting
	if err := db.First(&s, "`key` = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return s.Value, nil
}

// PutSetting inserts or overwrites the value for key.
func PutSetting(db *gorm.DB, key, value string) error {
	s := Setting{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&s).Error
}
