package core

import (
	"strings"
	"time"

	"launcher/models"
)

const (
	DefaultCategory       = "uncategorized"
	DefaultAppStorePrefix = "https://apps.apple.com/"
)

// Mode selects create or partial-update validation.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// Timestamp renders t the way timestamps are stored and sent to clients.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// AppValidator normalizes inbound app payloads into storage records.
type AppValidator struct {
	DefaultCategory   string
	AppStoreURLPrefix string
	Now               func() time.Time
}

// NewAppValidator returns a validator; empty arguments fall back to the
// package defaults.
func NewAppValidator(defaultCategory, appStorePrefix string) *AppValidator {
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}
	if appStorePrefix == "" {
		appStorePrefix = DefaultAppStorePrefix
	}
	return &AppValidator{
		DefaultCategory:   defaultCategory,
		AppStoreURLPrefix: appStorePrefix,
		Now:               time.Now,
	}
}

// Validate checks p and returns the snake_case record to persist. In update
// mode only the fields present in p are copied. The id is never copied;
// callers assign it.
func (v *AppValidator) Validate(p models.AppPayload, mode Mode) (models.Record, error) {
	out := models.Record{}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, NewValidationError("name required")
		}
		out["name"] = name
	} else if mode == ModeCreate {
		return nil, NewValidationError("name required")
	}

	if p.Category != nil {
		out["category"] = v.normalizeCategory(*p.Category)
	} else if mode == ModeCreate {
		out["category"] = v.DefaultCategory
	}

	if p.IconURL != nil {
		icon, err := normalizeIconURL(*p.IconURL)
		if err != nil {
			return nil, err
		}
		out["iconUrl"] = icon
	} else if mode == ModeCreate {
		out["iconUrl"] = ""
	}

	if p.AppStoreLink != nil {
		link := strings.TrimSpace(*p.AppStoreLink)
		if link != "" && !strings.HasPrefix(link, v.AppStoreURLPrefix) {
			return nil, NewValidationError("invalid app store link")
		}
		out["appStoreLink"] = link
	} else if mode == ModeCreate {
		out["appStoreLink"] = ""
	}

	now := Timestamp(v.now())
	out["lastModified"] = now
	if mode == ModeCreate {
		out["launchCount"] = 0
		out["lastLaunched"] = nil
	}

	return ToSnake(out), nil
}

func (v *AppValidator) normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return v.DefaultCategory
	}
	return category
}

func (v *AppValidator) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

func normalizeIconURL(raw string) (string, error) {
	icon := strings.TrimSpace(raw)
	icon = strings.TrimPrefix(icon, "@")
	if icon != "" && !strings.HasPrefix(icon, "http://") && !strings.HasPrefix(icon, "https://") {
		return "", NewValidationError("invalid icon URL")
	}
	return icon, nil
}
