// Package logger 基于log/slog的结构化日志
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options 日志配置
type Options struct {
	Level  string // debug/info/warn/error,默认info
	Format string // json/text,默认json
	Output io.Writer
}

// New 创建Logger
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		h = slog.NewTextHandler(out, handlerOpts)
	} else {
		h = slog.NewJSONHandler(out, handlerOpts)
	}
	return slog.New(h)
}

// ParseLevel 解析日志级别,无法识别时返回info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dev":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
