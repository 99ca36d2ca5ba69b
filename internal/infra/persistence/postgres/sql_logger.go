package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"helloworld/config"
	deliverycontext "helloworld/internal/delivery/context"
	"helloworld/internal/errors"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// sqlLogger routes GORM output to slog under the request's logger. Bind
// values (password hashes, emails) stay out of the log unless debug is on.
type sqlLogger struct {
	base       *slog.Logger
	level      gormlogger.LogLevel
	slow       time.Duration
	bindValues bool
}

var (
	_ gormlogger.Interface = (*sqlLogger)(nil)
	_ gorm.ParamsFilter    = (*sqlLogger)(nil)
)

func newSQLLogger(base *slog.Logger, cfg *config.Config) *sqlLogger {
	l := &sqlLogger{base: base, level: gormlogger.Warn, slow: defaultSlowQueryThreshold}
	if cfg == nil {
		return l
	}
	if cfg.Env.Debug {
		l.level = gormlogger.Info
		l.bindValues = true
	}
	if cfg.Database.SlowQueryThreshold > 0 {
		l.slow = cfg.Database.SlowQueryThreshold
	}

	return l
}

func (l *sqlLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level

	return &clone
}

func (l *sqlLogger) Info(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, gormlogger.Info, slog.LevelInfo, fmt.Sprintf(msg, args...))
}

func (l *sqlLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, gormlogger.Warn, slog.LevelWarn, fmt.Sprintf(msg, args...))
}

func (l *sqlLogger) Error(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, gormlogger.Error, slog.LevelError, fmt.Sprintf(msg, args...))
}

func (l *sqlLogger) emit(ctx context.Context, atLeast gormlogger.LogLevel, level slog.Level, msg string) {
	if l.level < atLeast {
		return
	}
	deliverycontext.Logger(ctx, l.base).LogAttrs(ctx, level, "SQL", slog.String("message", msg))
}

// ParamsFilter drops bind values so GORM logs placeholders instead.
func (l *sqlLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if l.bindValues {
		return sql, params
	}

	return sql, nil
}

func (l *sqlLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var (
		level slog.Level
		msg   string
		extra slog.Attr
	)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		level, msg, extra = slog.LevelError, "SQL failed", slog.String("error", err.Error())
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		level, msg, extra = slog.LevelWarn, "SQL slow", slog.Duration("threshold", l.slow)
	case l.level >= gormlogger.Info:
		level, msg = slog.LevelInfo, "SQL"
	default:
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
	if extra.Key != "" {
		attrs = append(attrs, extra)
	}
	deliverycontext.Logger(ctx, l.base).LogAttrs(ctx, level, msg, attrs...)
}
