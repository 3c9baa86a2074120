package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger — общий интерфейс логирования для всех слоёв приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
	With(args ...any) Logger
}

// SlogLogger реализует Logger поверх log/slog с JSON-выводом.
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger создаёт логгер, пишущий в stdout. Уровень берётся из LOG_LEVEL.
func NewSlogLogger() *SlogLogger {
	return NewSlogLoggerWithWriter(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func NewSlogLoggerWithWriter(w io.Writer, level slog.Level) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &SlogLogger{log: slog.New(handler)}
}

// ParseLevel переводит строковый уровень в slog.Level, по умолчанию info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Errorf(err error, format string, args ...any) {
	if err == nil {
		l.log.Error(fmt.Sprintf(format, args...))
		return
	}
	l.log.Error(fmt.Sprintf(format, args...), slog.String("error", err.Error()))
}

// With возвращает логгер с дополнительными полями (request_id, supplier_id и т.п.).
func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{log: l.log.With(args...)}
}

// Nop — логгер, который ничего не пишет. Используется в тестах.
type Nop struct{}

func NewNop() Logger { return Nop{} }

func (Nop) Debugf(string, ...any)        {}
func (Nop) Infof(string, ...any)         {}
func (Nop) Warnf(string, ...any)         {}
func (Nop) Errorf(error, string, ...any) {}
func (n Nop) With(...any) Logger         { return n }

var _ Logger = (*SlogLogger)(nil)
