package models

import "time"

// ModelSetting persists the per-model enablement toggle for the provider
// and model pickers.
type ModelSetting struct {
	ID        uint      `gorm:"primaryKey"`
	Provider  string    `gorm:"size:50;not null;index:idx_model_setting_provider"`
	ModelKey  string    `gorm:"size:128;not null;uniqueIndex"`
	Enabled   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
