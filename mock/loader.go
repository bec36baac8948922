package mock

import (
	"context"

	"github.com/fwojciec/cratedoc"
)

var _ cratedoc.Loader = (*Loader)(nil)

// Loader is a mock implementation of cratedoc.Loader.
type Loader struct {
	LoadFn func(ctx context.Context, identifier string) *cratedoc.Fragment
}

func (l *Loader) Load(ctx context.Context, identifier string) *cratedoc.Fragment {
	return l.LoadFn(ctx, identifier)
}
