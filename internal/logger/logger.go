package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/usersvc/internal/config"
)

// New creates a JSON slog.Logger writing to stdout at the given level.
func New(level slog.Leveler) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a JSON slog.Logger writing to w.
func NewWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func fromConfig(cfg *config.Config) *slog.Logger {
	return New(cfg.LogLevel)
}
