package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cratedoc"
	"github.com/google/uuid"
)

// Ensure LoggingLoader implements cratedoc.Loader.
var _ cratedoc.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader and tags each load with a unique id, so the
// lines of concurrent loads can be told apart.
type LoggingLoader struct {
	next   cratedoc.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next cratedoc.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the result size.
func (l *LoggingLoader) Load(ctx context.Context, identifier string) (f *cratedoc.Fragment) {
	id := uuid.New().String()
	l.logger.InfoContext(ctx, "load started", "id", id, "crate", identifier)
	defer func(begin time.Time) {
		bytes := 0
		if f != nil {
			bytes = len(f.Content)
		}
		l.logger.InfoContext(ctx, "load finished",
			"id", id,
			"crate", identifier,
			"bytes", bytes,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return l.next.Load(ctx, identifier)
}
