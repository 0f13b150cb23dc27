package logger

import (
	"context"
	"fmt"
	"os"

	"github.com/core-telecoms/bucketctl/pkg/api/logger/color"
)

type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

type logLevelCtxKey struct{}

type Logger interface {
	Error(ctx context.Context, format string, a ...any)
	Warn(ctx context.Context, format string, a ...any)
	Info(ctx context.Context, format string, a ...any)
	Debug(ctx context.Context, format string, a ...any)

	SetLogLevel(ctx context.Context, level LogLevel) context.Context
}

type logger struct{}

func New() Logger {
	return &logger{}
}

func (l *logger) SetLogLevel(ctx context.Context, level LogLevel) context.Context {
	return context.WithValue(ctx, logLevelCtxKey{}, level)
}

func levelOf(ctx context.Context) LogLevel {
	if ctx == nil {
		return LogLevelInfo
	}
	if level, ok := ctx.Value(logLevelCtxKey{}).(LogLevel); ok {
		return level
	}
	return LogLevelInfo
}

func (l *logger) Error(ctx context.Context, format string, a ...any) {
	_, _ = fmt.Fprintln(os.Stderr, color.RedFmt("ERROR: %s", fmt.Sprintf(format, a...)))
}

func (l *logger) Warn(ctx context.Context, format string, a ...any) {
	if levelOf(ctx) < LogLevelWarn {
		return
	}
	fmt.Println(color.YellowFmt("WARN: %s", fmt.Sprintf(format, a...)))
}

func (l *logger) Info(ctx context.Context, format string, a ...any) {
	if levelOf(ctx) < LogLevelInfo {
		return
	}
	fmt.Println("INFO: " + fmt.Sprintf(format, a...))
}

func (l *logger) Debug(ctx context.Context, format string, a ...any) {
	if levelOf(ctx) < LogLevelDebug {
		return
	}
	fmt.Println(color.GrayFmt("DEBUG: %s", fmt.Sprintf(format, a...)))
}
