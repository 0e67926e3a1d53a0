package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launcher/models"
)

// fakeStore is a single-table RecordStore; failInsert makes every insert
// fail with a storage error.
type fakeStore struct {
	rows       map[string]models.Record
	failInsert bool
	inserts    int
	updates    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]models.Record{}}
}

func (f *fakeStore) Get(_ context.Context, _ string, id string) (models.Record, error) {
	rec, ok := f.rows[id]
	if !ok {
		return nil, NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}
	return rec.Clone(), nil
}

func (f *fakeStore) List(context.Context, string, models.Record) ([]models.Record, error) {
	out := make([]models.Record, 0, len(f.rows))
	for _, rec := range f.rows {
		out = append(out, rec.Clone())
	}
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, _ string, rec models.Record) (models.Record, error) {
	if f.failInsert {
		return nil, NewStorageError("insert failed", errors.New("disk full"))
	}
	id, _ := rec.String("id")
	f.rows[id] = rec.Clone()
	f.inserts++
	return rec.Clone(), nil
}

func (f *fakeStore) Update(_ context.Context, _ string, id string, rec models.Record) (models.Record, error) {
	cur, ok := f.rows[id]
	if !ok {
		return nil, NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}
	for k, v := range rec {
		cur[k] = v
	}
	f.updates++
	return cur.Clone(), nil
}

func (f *fakeStore) Delete(_ context.Context, _ string, id string) error {
	if _, ok := f.rows[id]; !ok {
		return NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}
	delete(f.rows, id)
	return nil
}

func rawEntries(t *testing.T, body string) []json.RawMessage {
	t.Helper()
	entries, err := ParseImportBody([]byte(body))
	require.NoError(t, err)
	return entries
}

func newTestImporter(store RecordStore) *Importer {
	im := NewImporter(store, "launcher_apps", newTestValidator())
	n := 0
	im.NewID = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	return im
}

func TestImportBatchCounts(t *testing.T) {
	store := newFakeStore()
	store.rows["existing"] = models.Record{"id": "existing", "name": "Old", "category": "misc"}

	summary, err := newTestImporter(store).ImportBatch(context.Background(), rawEntries(t, `[
		{"name": "New"},
		{"id": "existing", "name": "Renamed"},
		{"category": "no name"}
	]`))
	require.NoError(t, err)

	assert.Equal(t, models.ImportSummary{Imported: 1, Updated: 1, Total: 3}, summary)
	assert.Equal(t, "Renamed", store.rows["existing"]["name"])
	assert.Equal(t, "misc", store.rows["existing"]["category"])
	require.Contains(t, store.rows, "gen-1")
	assert.Equal(t, 0, store.rows["gen-1"]["launch_count"])
}

func TestImportBatchReusesUnknownSuppliedID(t *testing.T) {
	store := newFakeStore()

	summary, err := newTestImporter(store).ImportBatch(context.Background(), rawEntries(t, `[{"id": "keep-me", "name": "A"}]`))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Contains(t, store.rows, "keep-me")
}

func TestImportBatchSkipsUndecodableEntries(t *testing.T) {
	store := newFakeStore()

	summary, err := newTestImporter(store).ImportBatch(context.Background(), rawEntries(t, `[42, {"name": 7}, {"name": "ok", "iconUrl": "ftp://x"}, {"name": "ok"}]`))
	require.NoError(t, err)
	assert.Equal(t, models.ImportSummary{Imported: 1, Total: 4}, summary)
}

func TestImportBatchAbortsOnStorageError(t *testing.T) {
	store := newFakeStore()
	store.failInsert = true

	summary, err := newTestImporter(store).ImportBatch(context.Background(), rawEntries(t, `[{"name": "A"}, {"name": "B"}]`))
	require.Error(t, err)
	assert.True(t, IsStorage(err))
	assert.Equal(t, models.ImportSummary{Total: 2}, summary)
}

func TestImportBatchStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestImporter(newFakeStore()).ImportBatch(ctx, rawEntries(t, `[{"name": "A"}]`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseImportBody(t *testing.T) {
	entries, err := ParseImportBody([]byte(`{"apps": [{"name": "A"}, {"name": "B"}]}`))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = ParseImportBody([]byte(`[{"name": "A"}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.JSONEq(t, `{"name": "A"}`, string(entries[0]))

	entries, err = ParseImportBody([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, entries)

	for _, bad := range []string{`{"apps": "nope"}`, `{"other": []}`, `"apps"`, `12`} {
		_, err := ParseImportBody([]byte(bad))
		require.Error(t, err, bad)
		assert.Equal(t, "invalid data format - expected array of apps", err.Error(), bad)
	}

	_, err = ParseImportBody([]byte(`{"apps": [`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "invalid JSON body", err.Error())
}
