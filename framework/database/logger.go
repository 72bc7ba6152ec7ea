package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

type logrusLogger struct {
	log   logrus.FieldLogger
	level logger.LogLevel
}

// NewLogger adapts log to GORM. Statements are logged at debug level when
// debug is set, slow or failed statements are logged as warnings.
func NewLogger(log logrus.FieldLogger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &logrusLogger{log: log, level: level}
}

func (l *logrusLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &logrusLogger{log: l.log, level: level}
}

func (l *logrusLogger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.level >= logger.Info {
		l.log.Infof(s, args...)
	}
}

func (l *logrusLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.log.Warnf(s, args...)
	}
}

func (l *logrusLogger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.level >= logger.Error {
		l.log.Errorf(s, args...)
	}
}

const slowThreshold = 200 * time.Millisecond

func (l *logrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := l.log.WithFields(logrus.Fields{
		"elapsed": elapsed,
		"rows":    rows,
	})

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound) && l.level >= logger.Error:
		entry.WithError(err).Warn(sql)
	case elapsed > slowThreshold && l.level >= logger.Warn:
		entry.Warnf("slow query: %s", sql)
	case l.level >= logger.Info:
		entry.Debug(sql)
	}
}
