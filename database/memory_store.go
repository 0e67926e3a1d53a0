package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cast"

	"launcher/core"
	"launcher/models"
)

// MemoryStore keeps records in process memory. Rows are kept in insertion
// order; it is used by tests and DATABASE_URL=memory://.
type MemoryStore struct {
	mu       sync.RWMutex
	tables   Tables
	rows     map[string][]models.Record
	settings map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(tables Tables) *MemoryStore {
	return &MemoryStore{
		tables:   tables,
		rows:     make(map[string][]models.Record),
		settings: make(map[string]string),
	}
}

func (m *MemoryStore) Tables() Tables {
	return m.tables
}

func (m *MemoryStore) Get(ctx context.Context, table, id string) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.NewStorageError("get cancelled", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(table, id)
	if i < 0 {
		return nil, core.NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}
	return m.rows[table][i].Clone(), nil
}

func (m *MemoryStore) List(ctx context.Context, table string, filters models.Record) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.NewStorageError("list cancelled", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Record{}
	for _, row := range m.rows[table] {
		if matches(row, filters) {
			out = append(out, row.Clone())
		}
	}
	return out, nil
}

func (m *MemoryStore) Insert(ctx context.Context, table string, rec models.Record) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.NewStorageError("insert cancelled", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := rec.String(models.ColumnID); ok && m.indexOf(table, id) >= 0 {
		return nil, core.NewStorageError(fmt.Sprintf("failed to insert into %s", table),
			fmt.Errorf("duplicate id %s", id))
	}
	row := rec.Clone()
	m.rows[table] = append(m.rows[table], row)
	return row.Clone(), nil
}

func (m *MemoryStore) Update(ctx context.Context, table, id string, rec models.Record) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.NewStorageError("update cancelled", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(table, id)
	if i < 0 {
		return nil, core.NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}
	row := m.rows[table][i]
	for k, v := range rec {
		if k == models.ColumnID {
			continue
		}
		row[k] = v
	}
	return row.Clone(), nil
}

func (m *MemoryStore) Delete(ctx context.Context, table, id string) error {
	if err := ctx.Err(); err != nil {
		return core.NewStorageError("delete cancelled", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(table, id)
	if i < 0 {
		return core.NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}
	rows := m.rows[table]
	m.rows[table] = append(rows[:i:i], rows[i+1:]...)
	return nil
}

func (m *MemoryStore) GetSetting(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.settings[key]
	return v, ok, nil
}

func (m *MemoryStore) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *MemoryStore) DeleteSetting(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.settings, key)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Close() error {
	return nil
}

// indexOf must be called with mu held.
func (m *MemoryStore) indexOf(table, id string) int {
	for i, row := range m.rows[table] {
		if rowID, ok := row.String(models.ColumnID); ok && rowID == id {
			return i
		}
	}
	return -1
}

func matches(row, filters models.Record) bool {
	for k, want := range filters {
		got, ok := row[k]
		if !ok || cast.ToString(got) != cast.ToString(want) {
			return false
		}
	}
	return true
}
