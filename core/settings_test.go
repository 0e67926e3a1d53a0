package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(now time.Time) *SettingsReconciler {
	r := NewSettingsReconciler(DefaultIconSize)
	r.Now = func() time.Time { return now }
	return r
}

func TestDefaultDocument(t *testing.T) {
	doc := newTestReconciler(fixedNow).DefaultDocument()

	assert.Equal(t, SettingsVersion, doc.Metadata.Version)
	assert.Equal(t, Timestamp(fixedNow), doc.Metadata.LastUpdated)
	assert.Equal(t, map[string]any{
		"gridGap":      "5",
		"gridPadding":  "0",
		"iconSize":     60,
		"theme":        "dark",
		"appNameColor": "#ffffff",
		"paddingX":     "2",
		"paddingY":     "6",
		"safeAreaTop":  "0",
	}, doc.Settings)
}

func TestNewSettingsReconcilerClampsDefault(t *testing.T) {
	assert.Equal(t, 48, NewSettingsReconciler(48).DefaultIconSize)
	assert.Equal(t, DefaultIconSize, NewSettingsReconciler(500).DefaultIconSize)
	assert.Equal(t, DefaultIconSize, NewSettingsReconciler(0).DefaultIconSize)
}

func TestMergeRefreshesLastUpdated(t *testing.T) {
	current := newTestReconciler(fixedNow).DefaultDocument()
	later := fixedNow.Add(time.Hour)

	merged, err := newTestReconciler(later).Merge(current, map[string]any{"theme": "light", "custom": true})
	require.NoError(t, err)

	assert.Equal(t, Timestamp(later), merged.Metadata.LastUpdated)
	assert.Equal(t, SettingsVersion, merged.Metadata.Version)
	assert.Equal(t, "light", merged.Settings["theme"])
	assert.Equal(t, true, merged.Settings["custom"])
	assert.Equal(t, "5", merged.Settings["gridGap"])

	// current is untouched
	assert.Equal(t, "dark", current.Settings["theme"])
	assert.NotContains(t, current.Settings, "custom")
}

func TestMergeEmptyPartialStillRefreshes(t *testing.T) {
	current := newTestReconciler(fixedNow).DefaultDocument()
	later := fixedNow.Add(time.Minute)

	merged, err := newTestReconciler(later).Merge(current, nil)
	require.NoError(t, err)
	assert.Equal(t, current.Settings, merged.Settings)
	assert.Equal(t, Timestamp(later), merged.Metadata.LastUpdated)
}

func TestMergeIconSizeBounds(t *testing.T) {
	r := newTestReconciler(fixedNow)
	current := r.DefaultDocument()

	for _, ok := range []any{24, 96, float64(48), "72", int64(30)} {
		merged, err := r.Merge(current, map[string]any{KeyIconSize: ok})
		require.NoError(t, err, "%v", ok)
		assert.IsType(t, 0, merged.Settings[KeyIconSize])
	}

	for _, bad := range []any{23, 97, 48.5, "big", nil, true, []any{1}} {
		_, err := r.Merge(current, map[string]any{KeyIconSize: bad, "theme": "light"})
		require.Error(t, err, "%v", bad)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "icon size out of range", err.Error())
	}
	assert.Equal(t, "dark", current.Settings["theme"])
}

func TestMergeKeepsStoredVersion(t *testing.T) {
	current := newTestReconciler(fixedNow).DefaultDocument()
	current.Metadata.Version = "2.0"

	merged, err := newTestReconciler(fixedNow).Merge(current, map[string]any{"theme": "light"})
	require.NoError(t, err)
	assert.Equal(t, "2.0", merged.Metadata.Version)
}

func TestResetReturnsDefaults(t *testing.T) {
	r := newTestReconciler(fixedNow)
	assert.Equal(t, r.DefaultDocument(), r.Reset())
}
