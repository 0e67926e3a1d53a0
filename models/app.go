package models

import "strings"

// App is the persisted app row. Rows are read and written as Records; the
// struct drives table migration.
type App struct {
	ID           string  `gorm:"primaryKey;size:64" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Category     string  `gorm:"index;not null;default:'uncategorized'" json:"category"`
	IconURL      string  `gorm:"column:icon_url;not null;default:''" json:"icon_url"`
	AppStoreLink string  `gorm:"column:app_store_link;not null;default:''" json:"app_store_link"`
	LaunchCount  int     `gorm:"column:launch_count;not null;default:0" json:"launch_count"`
	LastModified string  `gorm:"column:last_modified" json:"last_modified"`
	LastLaunched *string `gorm:"column:last_launched" json:"last_launched"`
}

// Storage column names for App.
const (
	ColumnID           = "id"
	ColumnName         = "name"
	ColumnCategory     = "category"
	ColumnIconURL      = "icon_url"
	ColumnAppStoreLink = "app_store_link"
	ColumnLaunchCount  = "launch_count"
	ColumnLastModified = "last_modified"
	ColumnLastLaunched = "last_launched"
)

// AppColumns lists every App column in wire order.
var AppColumns = []string{
	ColumnID,
	ColumnName,
	ColumnCategory,
	ColumnIconURL,
	ColumnAppStoreLink,
	ColumnLaunchCount,
	ColumnLastModified,
	ColumnLastLaunched,
}

// AppEntry is the client-facing shape of an app.
type AppEntry struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Category     string  `json:"category" yaml:"category"`
	IconURL      string  `json:"iconUrl" yaml:"iconUrl"`
	AppStoreLink string  `json:"appStoreLink" yaml:"appStoreLink"`
	LaunchCount  int     `json:"launchCount" yaml:"launchCount"`
	LastModified string  `json:"lastModified" yaml:"lastModified"`
	LastLaunched *string `json:"lastLaunched" yaml:"lastLaunched"`
}

// AppPayload is an inbound create/update/import payload. Nil fields were not
// sent; unknown JSON keys are dropped by the decoder.
type AppPayload struct {
	ID           *string `json:"id,omitempty" yaml:"id,omitempty"`
	Name         *string `json:"name,omitempty" yaml:"name,omitempty"`
	Category     *string `json:"category,omitempty" yaml:"category,omitempty"`
	IconURL      *string `json:"iconUrl,omitempty" yaml:"iconUrl,omitempty"`
	AppStoreLink *string `json:"appStoreLink,omitempty" yaml:"appStoreLink,omitempty"`
}

// SuppliedID returns the trimmed id carried by the payload, if any.
func (p AppPayload) SuppliedID() (string, bool) {
	if p.ID == nil {
		return "", false
	}
	id := strings.TrimSpace(*p.ID)
	return id, id != ""
}

// ImportSummary reports the outcome of a bulk import.
type ImportSummary struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}
