package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launcher/models"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

func newTestValidator() *AppValidator {
	v := NewAppValidator("", "")
	v.Now = func() time.Time { return fixedNow }
	return v
}

func TestValidateCreateRequiresName(t *testing.T) {
	v := newTestValidator()

	_, err := v.Validate(models.AppPayload{}, ModeCreate)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "name required", err.Error())

	_, err = v.Validate(models.AppPayload{Name: str("   ")}, ModeCreate)
	assert.True(t, IsValidation(err))
}

func TestValidateCreateDefaults(t *testing.T) {
	rec, err := newTestValidator().Validate(models.AppPayload{Name: str(" X ")}, ModeCreate)
	require.NoError(t, err)

	assert.Equal(t, "X", rec["name"])
	assert.Equal(t, DefaultCategory, rec["category"])
	assert.Equal(t, "", rec["icon_url"])
	assert.Equal(t, "", rec["app_store_link"])
	assert.Equal(t, 0, rec["launch_count"])
	assert.Contains(t, rec, "last_launched")
	assert.Nil(t, rec["last_launched"])
	assert.Equal(t, Timestamp(fixedNow), rec["last_modified"])
	assert.NotContains(t, rec, "id")
}

func TestValidateCategoryNormalization(t *testing.T) {
	v := newTestValidator()

	rec, err := v.Validate(models.AppPayload{Name: str("Maps"), Category: str("  Travel ")}, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, "travel", rec["category"])

	rec, err = v.Validate(models.AppPayload{Name: str("Maps"), Category: str("")}, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, rec["category"])
}

func TestValidateIconURL(t *testing.T) {
	v := newTestValidator()

	rec, err := v.Validate(models.AppPayload{Name: str("A"), IconURL: str(" @https://x/i.png ")}, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, "https://x/i.png", rec["icon_url"])

	rec, err = v.Validate(models.AppPayload{Name: str("A"), IconURL: str("http://x/i.png")}, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, "http://x/i.png", rec["icon_url"])

	_, err = v.Validate(models.AppPayload{Name: str("A"), IconURL: str("ftp://x")}, ModeCreate)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "invalid icon URL", err.Error())
}

func TestValidateAppStoreLink(t *testing.T) {
	v := newTestValidator()

	rec, err := v.Validate(models.AppPayload{Name: str("A"), AppStoreLink: str("https://apps.apple.com/app/id1")}, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, "https://apps.apple.com/app/id1", rec["app_store_link"])

	rec, err = v.Validate(models.AppPayload{Name: str("A"), AppStoreLink: str("  ")}, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, "", rec["app_store_link"])

	_, err = v.Validate(models.AppPayload{Name: str("A"), AppStoreLink: str("https://example.com/app")}, ModeCreate)
	require.Error(t, err)
	assert.Equal(t, "invalid app store link", err.Error())
}

func TestValidateCustomAppStorePrefix(t *testing.T) {
	v := NewAppValidator("misc", "https://store.example/")

	rec, err := v.Validate(models.AppPayload{Name: str("A"), AppStoreLink: str("https://store.example/a")}, ModeCreate)
	require.NoError(t, err)
	assert.Equal(t, "misc", rec["category"])

	_, err = v.Validate(models.AppPayload{Name: str("A"), AppStoreLink: str("https://apps.apple.com/a")}, ModeCreate)
	assert.True(t, IsValidation(err))
}

func TestValidateUpdateCopiesOnlyPresentFields(t *testing.T) {
	rec, err := newTestValidator().Validate(models.AppPayload{Category: str("Games")}, ModeUpdate)
	require.NoError(t, err)

	assert.Equal(t, models.Record{
		"category":      "games",
		"last_modified": Timestamp(fixedNow),
	}, rec)
}

func TestValidateUpdateRejectsBlankName(t *testing.T) {
	_, err := newTestValidator().Validate(models.AppPayload{Name: str("")}, ModeUpdate)
	assert.True(t, IsValidation(err))
}

func TestValidateNeverCopiesID(t *testing.T) {
	rec, err := newTestValidator().Validate(models.AppPayload{ID: str("abc"), Name: str("A")}, ModeCreate)
	require.NoError(t, err)
	assert.NotContains(t, rec, "id")
}
