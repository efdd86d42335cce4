package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes codec events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event. Values are logged at Debug, warnings at Warn and
// errors at Error level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("op", event.Operation.String()),
		slog.String("format", event.Format.String()),
		slog.String("category", event.Category.String()),
	}
	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", event.SessionID))
	}
	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}

	level := slog.LevelDebug
	switch {
	case event.Value != nil:
		attrs = append(attrs,
			slog.String("kind", event.Value.Kind),
			slog.Int("size", event.Value.Size),
			slog.Int("nodes", event.Value.Nodes),
			slog.Int("depth", event.Value.Depth),
		)
		if event.Value.Duration > 0 {
			attrs = append(attrs, slog.Duration("duration", event.Value.Duration))
		}
	case event.Warning != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("code", event.Warning.Code.String()),
			slog.Int64("offset", event.Warning.Offset),
		)
		if event.Warning.Message != "" {
			attrs = append(attrs, slog.String("detail", event.Warning.Message))
		}
	case event.Error != nil:
		level = slog.LevelError
		attrs = append(attrs,
			slog.Int64("offset", event.Error.Offset),
			slog.String("error", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "bencode", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
