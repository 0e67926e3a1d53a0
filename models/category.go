package models

// Category is a named grouping tag for apps.
type Category struct {
	Name string `gorm:"primaryKey;size:50" json:"name"`
}
