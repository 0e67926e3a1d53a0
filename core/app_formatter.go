package core

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"launcher/models"
)

type storedApp struct {
	ID           string  `mapstructure:"id"`
	Name         string  `mapstructure:"name"`
	Category     string  `mapstructure:"category"`
	IconURL      string  `mapstructure:"icon_url"`
	AppStoreLink string  `mapstructure:"app_store_link"`
	LaunchCount  int     `mapstructure:"launch_count"`
	LastModified string  `mapstructure:"last_modified"`
	LastLaunched *string `mapstructure:"last_launched"`
}

// FormatApp projects a stored app record into its wire shape. A record that
// lacks any app column yields a FormatError.
func FormatApp(rec models.Record) (models.AppEntry, error) {
	var s storedApp
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       timeToStringHook,
		ErrorUnset:       true,
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return models.AppEntry{}, NewFormatError(fmt.Sprintf("build decoder: %v", err))
	}
	if err := dec.Decode(map[string]any(rec)); err != nil {
		return models.AppEntry{}, NewFormatError(fmt.Sprintf("malformed app record: %v", err))
	}
	if s.ID == "" {
		return models.AppEntry{}, NewFormatError("malformed app record: empty id")
	}

	return models.AppEntry{
		ID:           s.ID,
		Name:         s.Name,
		Category:     s.Category,
		IconURL:      s.IconURL,
		AppStoreLink: s.AppStoreLink,
		LaunchCount:  s.LaunchCount,
		LastModified: s.LastModified,
		LastLaunched: s.LastLaunched,
	}, nil
}

// FormatApps formats every record, stopping at the first malformed one.
func FormatApps(recs []models.Record) ([]models.AppEntry, error) {
	out := make([]models.AppEntry, 0, len(recs))
	for _, rec := range recs {
		app, err := FormatApp(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, nil
}

// Some drivers hand back DATETIME columns as time.Time.
func timeToStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	t, ok := data.(time.Time)
	if !ok || to.Kind() != reflect.String {
		return data, nil
	}
	return Timestamp(t), nil
}
