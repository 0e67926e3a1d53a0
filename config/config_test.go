package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "TABLE_PREFIX", "DEFAULT_CATEGORY", "CORS_ENABLED", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "launcher.db", cfg.DatabaseURL)
	assert.Equal(t, "launcher_", cfg.TablePrefix)
	assert.Equal(t, "uncategorized", cfg.DefaultCategory)
	assert.Equal(t, "https://apps.apple.com/", cfg.AppStoreURLPrefix)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SQLITE_MAX_OPEN_CONNS", "not-a-number")

	cfg := FromEnv()
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.CORSEnabled)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 1, cfg.SQLiteMaxOpenConns)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.env")
	require.NoError(t, os.WriteFile(path, []byte("TABLE_PREFIX=test_\nDEFAULT_ICON_SIZE=48\n"), 0644))

	t.Setenv("LAUNCHER_ENV_FILE", path)
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("DEFAULT_ICON_SIZE", "")
	os.Unsetenv("TABLE_PREFIX")
	os.Unsetenv("DEFAULT_ICON_SIZE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test_", cfg.TablePrefix)
	assert.Equal(t, 48, cfg.DefaultIconSize)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("LAUNCHER_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	_, err := Load()
	assert.NoError(t, err)
}

func TestServerFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	cfg := FromEnv()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindServerFlags(fs)
	cfg.BindClientFlags(fs)
	require.NoError(t, fs.Parse([]string{"--port", "9000", "--db", "memory://", "-s", "http://remote:1"}))

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "memory://", cfg.DatabaseURL)
	assert.Equal(t, "http://remote:1", cfg.ServerURL)

	unset := FromEnv()
	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	unset.BindServerFlags(fs)
	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, 7000, unset.Port)
}

func TestPrintEnvHelp(t *testing.T) {
	var buf bytes.Buffer
	PrintEnvHelp(&buf)
	assert.Contains(t, buf.String(), "DATABASE_URL")
	assert.Contains(t, buf.String(), "APP_STORE_URL_PREFIX")
}
