package cratedoc

import (
	"context"
	"time"
)

// Fragment is a rendered document ready to be used as prompt context.
type Fragment struct {
	Reference   Reference
	Content     string
	Source      string
	GeneratedAt time.Time
}

// Loader produces crate documentation fragments.
type Loader interface {
	// Load resolves identifier ("name" or "name@version") and renders its
	// documentation. It never fails: degraded output is still a Fragment.
	Load(ctx context.Context, identifier string) *Fragment
}

// FragmentWriter persists fragments.
type FragmentWriter interface {
	WriteFragment(ctx context.Context, f *Fragment) error
}

// Validate returns an error if the fragment contains invalid fields.
func (f *Fragment) Validate() error {
	if f.Reference.Name == "" {
		return Errorf(EINVALID, "fragment crate name required")
	}
	if f.Content == "" {
		return Errorf(EINVALID, "fragment content required")
	}
	return nil
}
