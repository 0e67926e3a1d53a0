package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"launcher/core"
	"launcher/models"
)

// GormStore keeps records in a SQL database through gorm. Rows are read and
// written as maps so the same code serves every table.
type GormStore struct {
	db     *gorm.DB
	tables Tables
}

// NewGormStore wraps an open gorm handle.
func NewGormStore(db *gorm.DB, tables Tables) *GormStore {
	return &GormStore{db: db, tables: tables}
}

// Migrate creates or updates the launcher tables.
func (s *GormStore) Migrate() error {
	steps := []struct {
		table string
		model any
	}{
		{s.tables.Apps, &models.App{}},
		{s.tables.Categories, &models.Category{}},
		{s.tables.KV, &models.AppSetting{}},
	}
	for _, step := range steps {
		if err := s.db.Table(step.table).AutoMigrate(step.model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", step.table, err)
		}
	}
	return nil
}

func (s *GormStore) Tables() Tables {
	return s.tables
}

func (s *GormStore) Get(ctx context.Context, table, id string) (models.Record, error) {
	var rows []map[string]any
	err := s.db.WithContext(ctx).Table(table).
		Where(clause.Eq{Column: clause.Column{Name: models.ColumnID}, Value: id}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, core.NewStorageError(fmt.Sprintf("failed to load %s %s", table, id), err)
	}
	if len(rows) == 0 {
		return nil, core.NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}
	return normalizeRow(rows[0]), nil
}

func (s *GormStore) List(ctx context.Context, table string, filters models.Record) ([]models.Record, error) {
	q := s.db.WithContext(ctx).Table(table)
	for _, col := range sortedKeys(filters) {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: filters[col]})
	}

	var rows []map[string]any
	if err := q.Find(&rows).Error; err != nil {
		return nil, core.NewStorageError(fmt.Sprintf("failed to list %s", table), err)
	}

	out := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeRow(row))
	}
	return out, nil
}

func (s *GormStore) Insert(ctx context.Context, table string, rec models.Record) (models.Record, error) {
	if err := s.db.WithContext(ctx).Table(table).Create(map[string]any(rec.Clone())).Error; err != nil {
		return nil, core.NewStorageError(fmt.Sprintf("failed to insert into %s", table), err)
	}
	if id, ok := rec.String(models.ColumnID); ok {
		return s.Get(ctx, table, id)
	}
	return rec.Clone(), nil
}

func (s *GormStore) Update(ctx context.Context, table, id string, rec models.Record) (models.Record, error) {
	changes := rec.Clone()
	delete(changes, models.ColumnID)
	if len(changes) > 0 {
		res := s.db.WithContext(ctx).Table(table).
			Where(clause.Eq{Column: clause.Column{Name: models.ColumnID}, Value: id}).
			Updates(map[string]any(changes))
		if res.Error != nil {
			return nil, core.NewStorageError(fmt.Sprintf("failed to update %s %s", table, id), res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, core.NewNotFoundError(fmt.Sprintf("record %s not found", id))
		}
	}
	return s.Get(ctx, table, id)
}

func (s *GormStore) Delete(ctx context.Context, table, id string) error {
	res := s.db.WithContext(ctx).Exec("DELETE FROM ? WHERE ? = ?",
		clause.Table{Name: table}, clause.Column{Name: models.ColumnID}, id)
	if res.Error != nil {
		return core.NewStorageError(fmt.Sprintf("failed to delete %s %s", table, id), res.Error)
	}
	if res.RowsAffected == 0 {
		return core.NewNotFoundError(fmt.Sprintf("record %s not found", id))
	}
	return nil
}

func (s *GormStore) GetSetting(ctx context.Context, key string) (string, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, errors.New("empty setting key")
	}

	var setting models.AppSetting
	if err := s.db.WithContext(ctx).Table(s.tables.KV).First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, core.NewStorageError("failed to load setting "+key, err)
	}
	return setting.Value, true, nil
}

func (s *GormStore) SetSetting(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty setting key")
	}
	if err := s.db.WithContext(ctx).Table(s.tables.KV).Save(&models.AppSetting{Key: key, Value: value}).Error; err != nil {
		return core.NewStorageError("failed to save setting "+key, err)
	}
	return nil
}

func (s *GormStore) DeleteSetting(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty setting key")
	}
	if err := s.db.WithContext(ctx).Table(s.tables.KV).Where("key = ?", key).Delete(&models.AppSetting{}).Error; err != nil {
		return core.NewStorageError("failed to delete setting "+key, err)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// normalizeRow converts driver-specific column values ([]byte text) into
// plain Go values.
func normalizeRow(row map[string]any) models.Record {
	rec := make(models.Record, len(row))
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		rec[k] = v
	}
	return rec
}

func sortedKeys(rec models.Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
