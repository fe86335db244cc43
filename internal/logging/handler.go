package logging

import (
	"context"
	"log/slog"
)

// NotifyHandler пишет во внутренний handler и дублирует записи
// уровня Error и выше админам через Notifier.
type NotifyHandler struct {
	inner    slog.Handler
	notifier *Notifier
	attrs    []any
}

func NewNotifyHandler(inner slog.Handler, n *Notifier) *NotifyHandler {
	return &NotifyHandler{inner: inner, notifier: n}
}

func (h *NotifyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *NotifyHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError && h.notifier != nil {
		kv := append([]any(nil), h.attrs...)
		r.Attrs(func(a slog.Attr) bool {
			kv = append(kv, a.Key, a.Value.String())
			return true
		})
		h.notifier.Notify(r.Level, r.Message, kv...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *NotifyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	kv := append([]any(nil), h.attrs...)
	for _, a := range attrs {
		kv = append(kv, a.Key, a.Value.String())
	}
	return &NotifyHandler{inner: h.inner.WithAttrs(attrs), notifier: h.notifier, attrs: kv}
}

func (h *NotifyHandler) WithGroup(name string) slog.Handler {
	return &NotifyHandler{inner: h.inner.WithGroup(name), notifier: h.notifier, attrs: h.attrs}
}
