package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config holds launcher runtime configuration.
type Config struct {
	LogLevel    string
	LogFilePath string
	LogFormat   string // text, json or cli
	Port        int
	Host        string
	StaticDir   string
	CORSEnabled bool

	DatabaseURL          string
	TablePrefix          string
	SQLitePragmasEnabled bool
	SQLiteBusyTimeoutMS  int
	SQLiteJournalMode    string
	SQLiteSynchronous    string
	SQLiteForeignKeys    bool
	SQLiteMaxOpenConns   int
	SQLiteMaxIdleConns   int
	SQLiteConnMaxIdleSec int
	SQLiteConnMaxLifeSec int

	DefaultCategory   string
	DefaultIconSize   int
	AppStoreURLPrefix string

	ShutdownTimeoutSeconds int
	ServerURL              string // used by the client commands
}

// Load reads an optional .env file (or the files named in LAUNCHER_ENV_FILE,
// comma separated) and builds a Config from the environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	files := []string{".env"}
	if v := strings.TrimSpace(os.Getenv("LAUNCHER_ENV_FILE")); v != "" {
		files = strings.Split(v, ",")
	}
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from environment variables with defaults.
func FromEnv() *Config {
	return &Config{
		LogLevel:    strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		LogFilePath: getEnv("LOG_FILE", ""),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Port:        getEnvInt("PORT", 5000),
		Host:        getEnv("HOST", "0.0.0.0"),
		StaticDir:   getEnv("STATIC_DIR", ""),
		CORSEnabled: getEnvBool("CORS_ENABLED", true),

		DatabaseURL:          getEnv("DATABASE_URL", "launcher.db"),
		TablePrefix:          getEnv("TABLE_PREFIX", "launcher_"),
		SQLitePragmasEnabled: getEnvBool("SQLITE_PRAGMAS_ENABLED", true),
		SQLiteBusyTimeoutMS:  getEnvInt("SQLITE_BUSY_TIMEOUT_MS", 5000),
		SQLiteJournalMode:    getEnv("SQLITE_JOURNAL_MODE", "WAL"),
		SQLiteSynchronous:    getEnv("SQLITE_SYNCHRONOUS", "NORMAL"),
		SQLiteForeignKeys:    getEnvBool("SQLITE_FOREIGN_KEYS", true),
		SQLiteMaxOpenConns:   getEnvInt("SQLITE_MAX_OPEN_CONNS", 1),
		SQLiteMaxIdleConns:   getEnvInt("SQLITE_MAX_IDLE_CONNS", 1),
		SQLiteConnMaxIdleSec: getEnvInt("SQLITE_CONN_MAX_IDLE_SECONDS", 300),
		SQLiteConnMaxLifeSec: getEnvInt("SQLITE_CONN_MAX_LIFETIME_SECONDS", 0),

		DefaultCategory:   getEnv("DEFAULT_CATEGORY", "uncategorized"),
		DefaultIconSize:   getEnvInt("DEFAULT_ICON_SIZE", 60),
		AppStoreURLPrefix: getEnv("APP_STORE_URL_PREFIX", "https://apps.apple.com/"),

		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5),
		ServerURL:              getEnv("SERVER_URL", "http://localhost:5000"),
	}
}

// BindServerFlags registers the server overrides on fs, defaulting to the
// values already in c.
func (c *Config) BindServerFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.Port, "port", "p", c.Port, "HTTP server port (overrides PORT)")
	fs.StringVar(&c.Host, "host", c.Host, "HTTP listen address (overrides HOST)")
	fs.StringVar(&c.DatabaseURL, "db", c.DatabaseURL, "SQLite path, postgres:// DSN or memory:// (overrides DATABASE_URL)")
	fs.StringVar(&c.TablePrefix, "table-prefix", c.TablePrefix, "Table name prefix (overrides TABLE_PREFIX)")
	fs.StringVar(&c.StaticDir, "static", c.StaticDir, "Directory served at / (overrides STATIC_DIR)")
	fs.BoolVar(&c.CORSEnabled, "cors", c.CORSEnabled, "Enable CORS (overrides CORS_ENABLED)")
	fs.BoolVar(&c.SQLitePragmasEnabled, "sqlite-pragmas", c.SQLitePragmasEnabled, "Enable SQLite PRAGMAs (overrides SQLITE_PRAGMAS_ENABLED)")
	fs.IntVar(&c.SQLiteBusyTimeoutMS, "sqlite-busy-timeout-ms", c.SQLiteBusyTimeoutMS, "SQLite busy_timeout in milliseconds (overrides SQLITE_BUSY_TIMEOUT_MS)")
	fs.StringVar(&c.SQLiteJournalMode, "sqlite-journal-mode", c.SQLiteJournalMode, "SQLite journal_mode (overrides SQLITE_JOURNAL_MODE)")
	fs.StringVar(&c.SQLiteSynchronous, "sqlite-synchronous", c.SQLiteSynchronous, "SQLite synchronous (overrides SQLITE_SYNCHRONOUS)")
	fs.IntVar(&c.SQLiteMaxOpenConns, "sqlite-max-open-conns", c.SQLiteMaxOpenConns, "SQLite MaxOpenConns (overrides SQLITE_MAX_OPEN_CONNS)")
	fs.IntVar(&c.SQLiteMaxIdleConns, "sqlite-max-idle-conns", c.SQLiteMaxIdleConns, "SQLite MaxIdleConns (overrides SQLITE_MAX_IDLE_CONNS)")
	fs.StringVar(&c.AppStoreURLPrefix, "app-store-prefix", c.AppStoreURLPrefix, "Required prefix of App Store links (overrides APP_STORE_URL_PREFIX)")
	fs.IntVar(&c.ShutdownTimeoutSeconds, "shutdown-timeout", c.ShutdownTimeoutSeconds, "Graceful shutdown timeout in seconds")
}

// BindLogFlags registers the logging overrides on fs.
func (c *Config) BindLogFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: DEBUG, INFO, WARN, ERROR (overrides LOG_LEVEL)")
	fs.StringVar(&c.LogFilePath, "log-file", c.LogFilePath, "Log file path, empty logs to stderr (overrides LOG_FILE)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format: text, json, cli (overrides LOG_FORMAT)")
}

// BindClientFlags registers the flags used by commands that talk to a
// running server.
func (c *Config) BindClientFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.ServerURL, "server", "s", c.ServerURL, "Launcher server URL (overrides SERVER_URL)")
}

// PrintEnvHelp writes the supported environment variables to w.
func PrintEnvHelp(w io.Writer) {
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  LOG_LEVEL                         Log level (DEBUG, INFO, WARN, ERROR)")
	fmt.Fprintln(w, "  LOG_FILE                          Log file path (default stderr)")
	fmt.Fprintln(w, "  LOG_FORMAT                        text, json or cli (default text)")
	fmt.Fprintln(w, "  PORT                              HTTP server port (default 5000)")
	fmt.Fprintln(w, "  HOST                              HTTP listen address (default 0.0.0.0)")
	fmt.Fprintln(w, "  DATABASE_URL                      SQLite path, postgres:// DSN or memory:// (default launcher.db)")
	fmt.Fprintln(w, "  TABLE_PREFIX                      Table name prefix (default launcher_)")
	fmt.Fprintln(w, "  SQLITE_PRAGMAS_ENABLED            Enable SQLite PRAGMAs (default true)")
	fmt.Fprintln(w, "  SQLITE_BUSY_TIMEOUT_MS            SQLite busy_timeout in milliseconds (default 5000)")
	fmt.Fprintln(w, "  SQLITE_JOURNAL_MODE               SQLite journal_mode (default WAL)")
	fmt.Fprintln(w, "  SQLITE_SYNCHRONOUS                SQLite synchronous (default NORMAL)")
	fmt.Fprintln(w, "  SQLITE_FOREIGN_KEYS               Enable SQLite foreign_keys (default true)")
	fmt.Fprintln(w, "  SQLITE_MAX_OPEN_CONNS             SQLite MaxOpenConns (default 1)")
	fmt.Fprintln(w, "  SQLITE_MAX_IDLE_CONNS             SQLite MaxIdleConns (default 1)")
	fmt.Fprintln(w, "  SQLITE_CONN_MAX_IDLE_SECONDS      SQLite ConnMaxIdleTime in seconds (default 300)")
	fmt.Fprintln(w, "  SQLITE_CONN_MAX_LIFETIME_SECONDS  SQLite ConnMaxLifetime in seconds (default 0)")
	fmt.Fprintln(w, "  DEFAULT_CATEGORY                  Category for apps without one (default uncategorized)")
	fmt.Fprintln(w, "  DEFAULT_ICON_SIZE                 iconSize of the default settings (default 60)")
	fmt.Fprintln(w, "  APP_STORE_URL_PREFIX              Required App Store link prefix")
	fmt.Fprintln(w, "  CORS_ENABLED                      Enable CORS (default true)")
	fmt.Fprintln(w, "  STATIC_DIR                        Front end directory served at /")
	fmt.Fprintln(w, "  SERVER_URL                        Server used by client commands (default http://localhost:5000)")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
