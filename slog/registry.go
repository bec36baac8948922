package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cratedoc"
)

// Ensure LoggingRegistry implements cratedoc.Registry.
var _ cratedoc.Registry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a Registry with logging.
type LoggingRegistry struct {
	next   cratedoc.Registry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next cratedoc.Registry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// FindCrate delegates to the wrapped registry and logs the lookup.
func (r *LoggingRegistry) FindCrate(ctx context.Context, name string) (crate *cratedoc.Crate, err error) {
	defer func(begin time.Time) {
		r.logger.Log(ctx, level(err), "registry lookup",
			"crate", name,
			"found", crate != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.FindCrate(ctx, name)
}
