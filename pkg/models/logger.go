package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// logger sends gorm log output to zerolog
type logger struct {
	Logger        zerolog.Logger
	SlowThreshold time.Duration
}

func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	c := *l

	switch level {
	case gorm_logger.Silent:
		c.Logger = l.Logger.Level(zerolog.Disabled)
	case gorm_logger.Error:
		c.Logger = l.Logger.Level(zerolog.ErrorLevel)
	case gorm_logger.Warn:
		c.Logger = l.Logger.Level(zerolog.WarnLevel)
	}

	return &c
}

func (l *logger) Info(_ context.Context, s string, args ...interface{}) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...interface{}) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...interface{}) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]interface{}{
		"sql":      sql,
		"rows":     rows,
		"duration": elapsed,
	}

	if err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm_logger.ErrRecordNotFound) {
		l.Logger.Error().Err(err).Fields(fields).Msg("[GORM] query error")
		return
	}

	if l.SlowThreshold > 0 && elapsed > l.SlowThreshold {
		l.Logger.Warn().Fields(fields).Msg("[GORM] slow query")
		return
	}

	l.Logger.Debug().Fields(fields).Msg("[GORM] query")
}
