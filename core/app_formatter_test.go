package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launcher/models"
)

func storedRecord() models.Record {
	return models.Record{
		"id":             "a1",
		"name":           "Maps",
		"category":       "travel",
		"icon_url":       "https://x/i.png",
		"app_store_link": "",
		"launch_count":   int64(2),
		"last_modified":  "2024-01-01T00:00:00Z",
		"last_launched":  nil,
	}
}

func TestFormatApp(t *testing.T) {
	app, err := FormatApp(storedRecord())
	require.NoError(t, err)

	assert.Equal(t, models.AppEntry{
		ID:           "a1",
		Name:         "Maps",
		Category:     "travel",
		IconURL:      "https://x/i.png",
		LaunchCount:  2,
		LastModified: "2024-01-01T00:00:00Z",
	}, app)
}

func TestFormatAppLastLaunched(t *testing.T) {
	rec := storedRecord()
	rec["last_launched"] = "2024-02-01T00:00:00Z"

	app, err := FormatApp(rec)
	require.NoError(t, err)
	require.NotNil(t, app.LastLaunched)
	assert.Equal(t, "2024-02-01T00:00:00Z", *app.LastLaunched)
}

func TestFormatAppConvertsTimeValues(t *testing.T) {
	rec := storedRecord()
	rec["last_modified"] = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	app, err := FormatApp(rec)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05Z", app.LastModified)
}

func TestFormatAppMissingField(t *testing.T) {
	for _, col := range models.AppColumns {
		rec := storedRecord()
		delete(rec, col)

		_, err := FormatApp(rec)
		require.Error(t, err, col)
		assert.True(t, IsFormat(err), col)
	}
}

func TestFormatAppsStopsAtMalformedRecord(t *testing.T) {
	bad := storedRecord()
	delete(bad, "name")

	_, err := FormatApps([]models.Record{storedRecord(), bad})
	assert.True(t, IsFormat(err))

	apps, err := FormatApps(nil)
	require.NoError(t, err)
	assert.Empty(t, apps)
}
