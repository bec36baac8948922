package cratedoc

import "context"

// Crate is the registry's summary of a published crate.
type Crate struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	MaxVersion    string `json:"max_version"`
	CreatedAt     string `json:"created_at"`
	Downloads     int64  `json:"downloads"`
	Homepage      string `json:"homepage"`
	Documentation string `json:"documentation"`
	Repository    string `json:"repository"`
	License       string `json:"license"`
}

// Registry looks up crate metadata in a package registry.
type Registry interface {
	// FindCrate returns the crate's registry entry.
	// Returns ENOTFOUND if the registry does not know the crate.
	FindCrate(ctx context.Context, name string) (*Crate, error)
}
