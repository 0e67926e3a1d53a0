package core

import (
	"math"
	"time"

	"github.com/spf13/cast"

	"launcher/models"
)

const (
	SettingsVersion = "1.0"
	KeyIconSize     = "iconSize"
	MinIconSize     = 24
	MaxIconSize     = 96
	DefaultIconSize = 60
)

// SettingsReconciler merges partial updates into the settings document.
type SettingsReconciler struct {
	DefaultIconSize int
	Now             func() time.Time
}

// NewSettingsReconciler returns a reconciler whose default document uses
// iconSize; out-of-range values fall back to DefaultIconSize.
func NewSettingsReconciler(iconSize int) *SettingsReconciler {
	if iconSize < MinIconSize || iconSize > MaxIconSize {
		iconSize = DefaultIconSize
	}
	return &SettingsReconciler{DefaultIconSize: iconSize, Now: time.Now}
}

// DefaultDocument returns a fresh copy of the default settings document.
func (r *SettingsReconciler) DefaultDocument() models.SettingsDocument {
	iconSize := r.DefaultIconSize
	if iconSize == 0 {
		iconSize = DefaultIconSize
	}
	return models.SettingsDocument{
		Metadata: models.SettingsMetadata{
			LastUpdated: Timestamp(r.now()),
			Version:     SettingsVersion,
		},
		Settings: map[string]any{
			"gridGap":      "5",
			"gridPadding":  "0",
			KeyIconSize:    iconSize,
			"theme":        "dark",
			"appNameColor": "#ffffff",
			"paddingX":     "2",
			"paddingY":     "6",
			"safeAreaTop":  "0",
		},
	}
}

// Reset discards the current document in favour of the default.
func (r *SettingsReconciler) Reset() models.SettingsDocument {
	return r.DefaultDocument()
}

// Merge applies partial on top of current and returns the new document.
// current is left untouched; on error nothing is merged.
func (r *SettingsReconciler) Merge(current models.SettingsDocument, partial map[string]any) (models.SettingsDocument, error) {
	validated := make(map[string]any, len(partial))
	for k, v := range partial {
		if k == KeyIconSize {
			size, err := ValidateIconSize(v)
			if err != nil {
				return models.SettingsDocument{}, err
			}
			v = size
		}
		validated[k] = v
	}

	merged := make(map[string]any, len(current.Settings)+len(validated))
	for k, v := range current.Settings {
		merged[k] = v
	}
	for k, v := range validated {
		merged[k] = v
	}

	version := current.Metadata.Version
	if version == "" {
		version = SettingsVersion
	}
	return models.SettingsDocument{
		Metadata: models.SettingsMetadata{
			LastUpdated: Timestamp(r.now()),
			Version:     version,
		},
		Settings: merged,
	}, nil
}

// ValidateIconSize accepts integral numbers and numeric strings in
// [MinIconSize, MaxIconSize].
func ValidateIconSize(v any) (int, error) {
	outOfRange := NewValidationError("icon size out of range")

	var size int
	switch n := v.(type) {
	case nil, bool:
		return 0, outOfRange
	case float64:
		if n != math.Trunc(n) {
			return 0, outOfRange
		}
		size = int(n)
	case float32:
		if float64(n) != math.Trunc(float64(n)) {
			return 0, outOfRange
		}
		size = int(n)
	default:
		i, err := cast.ToIntE(v)
		if err != nil {
			return 0, outOfRange
		}
		size = i
	}

	if size < MinIconSize || size > MaxIconSize {
		return 0, outOfRange
	}
	return size, nil
}

func (r *SettingsReconciler) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
