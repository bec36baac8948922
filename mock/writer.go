package mock

import (
	"context"

	"github.com/fwojciec/cratedoc"
)

var _ cratedoc.FragmentWriter = (*FragmentWriter)(nil)

// FragmentWriter is a mock implementation of cratedoc.FragmentWriter.
type FragmentWriter struct {
	WriteFragmentFn func(ctx context.Context, f *cratedoc.Fragment) error
}

func (w *FragmentWriter) WriteFragment(ctx context.Context, f *cratedoc.Fragment) error {
	return w.WriteFragmentFn(ctx, f)
}
