package models

import "time"

// AppSetting stores small persistent key/value entries. The settings
// document is kept here as a single JSON value.
type AppSetting struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
