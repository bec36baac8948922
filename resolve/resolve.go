// Package resolve turns a crate identifier into a rendered document by
// running an ordered chain of stages: the cargo toolchain, then the
// crates.io registry, then a static template.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/cratedoc"
)

// Stage is one tier of the fallback chain. Run returns the finished
// document, or an error describing why the next stage should be tried.
type Stage interface {
	Name() string
	Run(ctx context.Context, ref cratedoc.Reference) (string, error)
}

// Resolver renders documentation for a crate identifier. Resolve always
// returns a document.
type Resolver struct {
	Stages []Stage
	Logger *slog.Logger
}

// NewResolver creates a Resolver that tries stages in the given order.
func NewResolver(logger *slog.Logger, stages ...Stage) *Resolver {
	return &Resolver{Stages: stages, Logger: logger}
}

// Resolve runs the stages in order and returns the first finished
// document. A stage that panics is treated like one that failed; a panic
// outside the stages yields a one-line failure message.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (doc string) {
	ref := Reference(identifier)
	logger := r.logger().With("crate", ref.String())

	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "resolve panicked", "panic", fmt.Sprint(p))
			doc = cratedoc.FormatFailure(ref)
		}
	}()

	for _, stage := range r.Stages {
		doc, err := r.run(ctx, stage, ref, logger)
		if err == nil {
			logger.InfoContext(ctx, "stage finished", "stage", stage.Name())
			return doc
		}
		logger.WarnContext(ctx, "stage failed, continuing", "stage", stage.Name(), "reason", err)
	}

	return cratedoc.FormatFailure(ref)
}

// run calls one stage, turning a panic inside it into an error so the
// next stage still gets its turn.
func (r *Resolver) run(ctx context.Context, stage Stage, ref cratedoc.Reference, logger *slog.Logger) (doc string, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "stage panicked", "stage", stage.Name(), "panic", fmt.Sprint(p))
			doc, err = "", fmt.Errorf("%s stage panicked: %v", stage.Name(), p)
		}
	}()
	return stage.Run(ctx, ref)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Reference parses identifier, keeping whatever it can from a malformed
// one so fallback messages can still name it.
func Reference(identifier string) cratedoc.Reference {
	ref, err := cratedoc.ParseReference(identifier)
	if err != nil {
		name, version, _ := strings.Cut(strings.TrimSpace(identifier), "@")
		return cratedoc.Reference{Name: name, Version: version}
	}
	return ref
}
