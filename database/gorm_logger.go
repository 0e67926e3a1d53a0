package database

import (
	"context"
	"errors"
	"time"

	"github.com/apex/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogWriter feeds gorm's formatted output into apex/log.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.WithField("component", "gorm").Debugf(format, args...)
}

// metricsLogger counts failing queries before delegating to the gorm logger.
type metricsLogger struct {
	inner logger.Interface
}

func newGormLogger(debug bool) logger.Interface {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	return metricsLogger{inner: logger.New(gormLogWriter{}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})}
}

func (l metricsLogger) LogMode(level logger.LogLevel) logger.Interface {
	return metricsLogger{inner: l.inner.LogMode(level)}
}

func (l metricsLogger) Info(ctx context.Context, s string, args ...interface{}) {
	l.inner.Info(ctx, s, args...)
}

func (l metricsLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	l.inner.Warn(ctx, s, args...)
}

func (l metricsLogger) Error(ctx context.Context, s string, args ...interface{}) {
	l.inner.Error(ctx, s, args...)
}

func (l metricsLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		recordQueryError(err)
	}
	l.inner.Trace(ctx, begin, fc, err)
}
