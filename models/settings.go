package models

// SettingsMetadata describes the stored settings document.
type SettingsMetadata struct {
	LastUpdated string `json:"lastUpdated"`
	Version     string `json:"version"`
}

// SettingsDocument is the singleton display configuration.
type SettingsDocument struct {
	Metadata SettingsMetadata `json:"metadata"`
	Settings map[string]any   `json:"settings"`
}

// Export is a full catalog dump accepted back by the import endpoint.
type Export struct {
	Apps       []AppEntry     `json:"apps" yaml:"apps"`
	Settings   map[string]any `json:"settings" yaml:"settings"`
	ExportedAt string         `json:"exportedAt" yaml:"exportedAt"`
}
