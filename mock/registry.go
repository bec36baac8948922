package mock

import (
	"context"

	"github.com/fwojciec/cratedoc"
)

var _ cratedoc.Registry = (*Registry)(nil)

// Registry is a mock implementation of cratedoc.Registry.
type Registry struct {
	FindCrateFn func(ctx context.Context, name string) (*cratedoc.Crate, error)
}

func (r *Registry) FindCrate(ctx context.Context, name string) (*cratedoc.Crate, error) {
	return r.FindCrateFn(ctx, name)
}
