package logging

import (
	"io"
	"log/slog"

	"github.com/kiselevos/textquest_bot/internal/config"
)

// NewLogger - текстовый лог локально, JSON в проде.
// Если notifier не nil, ошибки уходят ещё и админам.
func NewLogger(w io.Writer, cfg config.LogConfig, n *Notifier) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AppEnv == "local",
	}

	var h slog.Handler
	if cfg.AppEnv == "local" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	if n != nil {
		h = NewNotifyHandler(h, n)
	}
	return slog.New(h)
}
