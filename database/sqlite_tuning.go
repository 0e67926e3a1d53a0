package database

import (
	"fmt"
	"net/url"
	"strings"

	"launcher/config"
)

type sqlitePoolConfig struct {
	maxOpenConns int
	maxIdleConns int
	maxIdleSec   int
	maxLifeSec   int
}

// sanitize keeps at least one open connection and never more idle
// connections than open ones.
func (p sqlitePoolConfig) sanitize() sqlitePoolConfig {
	p.maxOpenConns = max(p.maxOpenConns, 1)
	p.maxIdleConns = min(max(p.maxIdleConns, 0), p.maxOpenConns)
	p.maxIdleSec = max(p.maxIdleSec, 0)
	p.maxLifeSec = max(p.maxLifeSec, 0)
	return p
}

func poolConfigFrom(cfg *config.Config) sqlitePoolConfig {
	return sqlitePoolConfig{
		maxOpenConns: cfg.SQLiteMaxOpenConns,
		maxIdleConns: cfg.SQLiteMaxIdleConns,
		maxIdleSec:   cfg.SQLiteConnMaxIdleSec,
		maxLifeSec:   cfg.SQLiteConnMaxLifeSec,
	}.sanitize()
}

// sqlitePragmas lists the PRAGMA assignments implied by cfg, in the
// "name(value)" form understood by the _pragma DSN parameter.
func sqlitePragmas(cfg *config.Config) []string {
	if !cfg.SQLitePragmasEnabled {
		return nil
	}
	var pragmas []string
	if cfg.SQLiteBusyTimeoutMS > 0 {
		pragmas = append(pragmas, fmt.Sprintf("busy_timeout(%d)", cfg.SQLiteBusyTimeoutMS))
	}
	if mode := normalizeSQLiteJournalMode(cfg.SQLiteJournalMode); mode != "" {
		pragmas = append(pragmas, fmt.Sprintf("journal_mode(%s)", mode))
	}
	if sync := normalizeSQLiteSynchronous(cfg.SQLiteSynchronous); sync != "" {
		pragmas = append(pragmas, fmt.Sprintf("synchronous(%s)", sync))
	}
	if cfg.SQLiteForeignKeys {
		pragmas = append(pragmas, "foreign_keys(1)")
	} else {
		pragmas = append(pragmas, "foreign_keys(0)")
	}
	return pragmas
}

// buildSQLiteDSN appends the configured pragmas to dbPath, keeping any query
// parameters already present.
func buildSQLiteDSN(dbPath string, cfg *config.Config) string {
	base, rawQuery, _ := strings.Cut(dbPath, "?")
	query, _ := url.ParseQuery(rawQuery)
	for _, p := range sqlitePragmas(cfg) {
		query.Add("_pragma", p)
	}
	if len(query) == 0 {
		return base
	}
	return base + "?" + query.Encode()
}

func normalizeSQLiteJournalMode(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	switch value {
	case "WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY", "OFF":
		return value
	default:
		return ""
	}
}

func normalizeSQLiteSynchronous(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	switch value {
	case "OFF", "NORMAL", "FULL", "EXTRA", "0", "1", "2", "3":
		return value
	default:
		return ""
	}
}
