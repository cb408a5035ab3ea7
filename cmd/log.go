package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var theLog = newLogger(slog.LevelWarn)

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if a.Value.String() == "INFO" {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
}

// setLogLevel 设置日志级别: debug|info|warn|error
func setLogLevel(s string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return fmt.Errorf("invalid log level %q", s)
	}
	theLog = newLogger(level)
	return nil
}

func defaultLogLevel() string {
	if v := os.Getenv("AQ_LOG_LEVEL"); v != "" {
		return v
	}
	return "warn"
}
