package resolve

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/cratedoc"
)

var _ cratedoc.Loader = (*Loader)(nil)

// Loader exposes a Resolver as the "rust" fragment loader.
type Loader struct {
	Resolver *Resolver

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewLoader creates a Loader backed by r.
func NewLoader(r *Resolver) *Loader {
	return &Loader{Resolver: r, Now: time.Now}
}

// Load implements cratedoc.Loader. Identifiers may carry a "rust:" prefix.
func (l *Loader) Load(ctx context.Context, identifier string) *cratedoc.Fragment {
	identifier = strings.TrimPrefix(strings.TrimSpace(identifier), cratedoc.LoaderName+":")
	ref := Reference(identifier)

	now := time.Now
	if l.Now != nil {
		now = l.Now
	}

	return &cratedoc.Fragment{
		Reference:   ref,
		Content:     l.Resolver.Resolve(ctx, identifier),
		Source:      cratedoc.DocsURL(ref.Name),
		GeneratedAt: now(),
	}
}
