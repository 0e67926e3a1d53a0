package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"launcher/config"
	"launcher/core"
)

// MemoryURL selects the in-memory store.
const MemoryURL = "memory://"

// Tables holds the physical table names.
type Tables struct {
	Apps       string
	Categories string
	KV         string
}

// NewTables derives the table names from prefix.
func NewTables(prefix string) Tables {
	return Tables{
		Apps:       prefix + "apps",
		Categories: prefix + "categories",
		KV:         prefix + "kv",
	}
}

// Store is the record store plus the key/value entries and lifecycle hooks
// the server needs.
type Store interface {
	core.RecordStore

	// GetSetting returns a persisted key/value entry; ok is false when the
	// key does not exist.
	GetSetting(ctx context.Context, key string) (value string, ok bool, err error)
	// SetSetting creates or replaces a key/value entry.
	SetSetting(ctx context.Context, key, value string) error
	// DeleteSetting removes a key/value entry if it exists.
	DeleteSetting(ctx context.Context, key string) error

	Tables() Tables
	Ping(ctx context.Context) error
	Close() error
}

// Open opens the store selected by cfg.DatabaseURL: memory:// for the
// in-memory store, postgres:// or postgresql:// for Postgres, anything else
// is a SQLite path.
func Open(cfg *config.Config) (Store, error) {
	tables := NewTables(cfg.TablePrefix)

	if cfg.DatabaseURL == MemoryURL {
		log.Info("using in-memory store")
		return NewMemoryStore(tables), nil
	}

	isPostgres := strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://")

	var dialector gorm.Dialector
	if isPostgres {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(buildSQLiteDSN(cfg.DatabaseURL, cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(cfg.LogLevel == "DEBUG"),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if !isPostgres {
		if err := tuneSQLite(db, cfg); err != nil {
			return nil, err
		}
	}

	store := NewGormStore(db, tables)
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}

	log.WithFields(log.Fields{
		"driver": dialector.Name(),
		"apps":   tables.Apps,
	}).Info("database initialized")
	return store, nil
}

func tuneSQLite(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	pool := poolConfigFrom(cfg)
	sqlDB.SetMaxIdleConns(pool.maxIdleConns)
	sqlDB.SetMaxOpenConns(pool.maxOpenConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(pool.maxIdleSec) * time.Second)
	sqlDB.SetConnMaxLifetime(time.Duration(pool.maxLifeSec) * time.Second)

	// The DSN applies pragmas to new connections; re-apply for files opened
	// before the pragma parameters were added.
	for _, p := range sqlitePragmas(cfg) {
		name, value, _ := strings.Cut(strings.TrimSuffix(p, ")"), "(")
		if err := db.Exec("PRAGMA " + name + " = " + value).Error; err != nil {
			log.WithError(err).WithField("pragma", name).Warn("failed to apply sqlite pragma")
		}
	}
	return nil
}
