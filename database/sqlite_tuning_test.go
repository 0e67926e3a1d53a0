package database

import (
	"strings"
	"testing"

	"launcher/config"
)

func TestBuildSQLiteDSN_PragmaParams(t *testing.T) {
	cfg := &config.Config{
		SQLitePragmasEnabled: true,
		SQLiteBusyTimeoutMS:  5000,
		SQLiteJournalMode:    "wal",
		SQLiteSynchronous:    "NORMAL",
		SQLiteForeignKeys:    true,
	}

	dsn := buildSQLiteDSN("launcher.db", cfg)
	for _, want := range []string{
		"_pragma=busy_timeout%285000%29",
		"_pragma=journal_mode%28WAL%29",
		"_pragma=synchronous%28NORMAL%29",
		"_pragma=foreign_keys%281%29",
	} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("expected DSN to contain %q, got %q", want, dsn)
		}
	}
}

func TestBuildSQLiteDSN_PreservesExistingQuery(t *testing.T) {
	cfg := &config.Config{SQLitePragmasEnabled: true}
	dsn := buildSQLiteDSN("launcher.db?cache=shared", cfg)
	if !strings.Contains(dsn, "cache=shared") {
		t.Fatalf("expected existing query to be preserved, got %q", dsn)
	}
	if !strings.Contains(dsn, "_pragma=foreign_keys%280%29") {
		t.Fatalf("expected foreign_keys pragma, got %q", dsn)
	}
}

func TestBuildSQLiteDSN_PragmasDisabled(t *testing.T) {
	cfg := &config.Config{SQLitePragmasEnabled: false, SQLiteBusyTimeoutMS: 100}
	if dsn := buildSQLiteDSN("launcher.db", cfg); dsn != "launcher.db" {
		t.Fatalf("expected bare path, got %q", dsn)
	}
}

func TestBuildSQLiteDSN_DropsUnknownJournalMode(t *testing.T) {
	cfg := &config.Config{SQLitePragmasEnabled: true, SQLiteJournalMode: "bogus"}
	if dsn := buildSQLiteDSN("launcher.db", cfg); strings.Contains(dsn, "journal_mode") {
		t.Fatalf("unexpected journal_mode in %q", dsn)
	}
}

func TestPoolConfigSanitize(t *testing.T) {
	got := sqlitePoolConfig{maxOpenConns: 0, maxIdleConns: 5, maxIdleSec: -1, maxLifeSec: -3}.sanitize()
	want := sqlitePoolConfig{maxOpenConns: 1, maxIdleConns: 1, maxIdleSec: 0, maxLifeSec: 0}
	if got != want {
		t.Fatalf("sanitize() = %+v, want %+v", got, want)
	}
}
