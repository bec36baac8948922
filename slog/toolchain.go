// Package slog provides logging decorators for cratedoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cratedoc"
)

// Ensure the decorators implement their interfaces.
var (
	_ cratedoc.Toolchain = (*LoggingToolchain)(nil)
	_ cratedoc.Workspace = (*LoggingWorkspace)(nil)
)

// level logs failures as warnings so they show at the default CLI level.
func level(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// LoggingToolchain wraps a Toolchain and the Workspaces it creates with
// logging of every toolchain command.
type LoggingToolchain struct {
	next   cratedoc.Toolchain
	logger *slog.Logger
}

// NewLoggingToolchain creates a new LoggingToolchain.
func NewLoggingToolchain(next cratedoc.Toolchain, logger *slog.Logger) *LoggingToolchain {
	return &LoggingToolchain{next: next, logger: logger}
}

// CreateWorkspace delegates to the wrapped toolchain and wraps the result.
func (t *LoggingToolchain) CreateWorkspace(ref cratedoc.Reference) (cratedoc.Workspace, error) {
	begin := time.Now()
	ws, err := t.next.CreateWorkspace(ref)
	if err != nil {
		t.logger.Warn("create workspace",
			"crate", ref.String(),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	t.logger.Info("create workspace",
		"crate", ref.String(),
		"dir", ws.Dir(),
		"duration", time.Since(begin),
	)
	return NewLoggingWorkspace(ws, t.logger.With("crate", ref.String())), nil
}

// LoggingWorkspace wraps a Workspace with logging.
type LoggingWorkspace struct {
	next   cratedoc.Workspace
	logger *slog.Logger
}

// NewLoggingWorkspace creates a new LoggingWorkspace.
func NewLoggingWorkspace(next cratedoc.Workspace, logger *slog.Logger) *LoggingWorkspace {
	return &LoggingWorkspace{next: next, logger: logger}
}

// Dir delegates to the wrapped workspace.
func (w *LoggingWorkspace) Dir() string {
	return w.next.Dir()
}

// DocDir delegates to the wrapped workspace.
func (w *LoggingWorkspace) DocDir() string {
	return w.next.DocDir()
}

// Lock delegates to the wrapped workspace and logs the command.
func (w *LoggingWorkspace) Lock(ctx context.Context) (err error) {
	defer w.logCommand(ctx, "cargo update", time.Now(), &err)
	return w.next.Lock(ctx)
}

// Build delegates to the wrapped workspace and logs the command.
func (w *LoggingWorkspace) Build(ctx context.Context) (err error) {
	defer w.logCommand(ctx, "cargo build", time.Now(), &err)
	return w.next.Build(ctx)
}

// Doc delegates to the wrapped workspace and logs the command.
func (w *LoggingWorkspace) Doc(ctx context.Context) (err error) {
	defer w.logCommand(ctx, "cargo doc", time.Now(), &err)
	return w.next.Doc(ctx)
}

// ResolvedVersion delegates to the wrapped workspace and logs the version.
func (w *LoggingWorkspace) ResolvedVersion() (version string, err error) {
	defer func() {
		w.logger.Log(context.Background(), level(err), "resolved version",
			"version", version,
			"err", err,
		)
	}()
	return w.next.ResolvedVersion()
}

// Metadata delegates to the wrapped workspace and logs the package count.
func (w *LoggingWorkspace) Metadata(ctx context.Context) (md *cratedoc.Metadata, err error) {
	defer func(begin time.Time) {
		packages := 0
		if md != nil {
			packages = len(md.Packages)
		}
		w.logger.Log(ctx, level(err), "cargo metadata",
			"packages", packages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Metadata(ctx)
}

// Tree delegates to the wrapped workspace and logs the output size.
func (w *LoggingWorkspace) Tree(ctx context.Context) (tree string, err error) {
	defer func(begin time.Time) {
		w.logger.Log(ctx, level(err), "cargo tree",
			"bytes", len(tree),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Tree(ctx)
}

// Close delegates to the wrapped workspace and logs the removal.
func (w *LoggingWorkspace) Close() (err error) {
	defer func() {
		w.logger.Log(context.Background(), level(err), "remove workspace",
			"dir", w.next.Dir(),
			"err", err,
		)
	}()
	return w.next.Close()
}

func (w *LoggingWorkspace) logCommand(ctx context.Context, msg string, begin time.Time, err *error) {
	w.logger.Log(ctx, level(*err), msg,
		"duration", time.Since(begin),
		"err", *err,
	)
}
