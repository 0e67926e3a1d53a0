package database

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sqliteBusyErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "launcher",
		Subsystem: "db",
		Name:      "sqlite_busy_errors_total",
		Help:      "Queries that failed with SQLITE_BUSY.",
	})
	sqliteLockedErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "launcher",
		Subsystem: "db",
		Name:      "sqlite_locked_errors_total",
		Help:      "Queries that failed with SQLITE_LOCKED.",
	})
	queryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "launcher",
		Subsystem: "db",
		Name:      "query_errors_total",
		Help:      "Queries that returned an error, excluding cancellations.",
	})
)

func classifySQLiteError(err error) (busy bool, locked bool) {
	if err == nil {
		return false, false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false, false
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "sqlite_busy") || strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy timeout") {
		busy = true
	}
	if strings.Contains(msg, "sqlite_locked") || strings.Contains(msg, "database table is locked") {
		locked = true
	}

	return busy, locked
}

func recordQueryError(err error) {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	queryErrors.Inc()

	busy, locked := classifySQLiteError(err)
	if busy {
		sqliteBusyErrors.Inc()
	}
	if locked {
		sqliteLockedErrors.Inc()
	}
}
