package cratedoc

import "context"

// Toolchain creates cargo workspaces in which a single crate is built and
// documented.
type Toolchain interface {
	// CreateWorkspace sets up a throwaway project that depends on ref.
	// The caller must Close the returned Workspace.
	CreateWorkspace(ref Reference) (Workspace, error)
}

// Workspace is a disposable project depending on exactly one crate.
// Each method runs one toolchain command to completion; nothing is retried.
type Workspace interface {
	// Dir returns the project root.
	Dir() string

	// DocDir returns the directory holding the crate's generated HTML,
	// e.g. target/doc/serde_json.
	DocDir() string

	// Lock pins the dependency to a concrete version.
	Lock(ctx context.Context) error

	// Build compiles the project, forcing the crate to be resolved and built.
	Build(ctx context.Context) error

	// Doc generates static HTML documentation, private items included.
	Doc(ctx context.Context) error

	// ResolvedVersion reads the lock file.
	// Returns ENOTFOUND if the crate has no entry.
	ResolvedVersion() (string, error)

	// Metadata returns the machine-readable package graph.
	Metadata(ctx context.Context) (*Metadata, error)

	// Tree returns the textual dependency tree with feature edges.
	Tree(ctx context.Context) (string, error)

	// Close removes the project directory.
	Close() error
}

// Metadata is the subset of `cargo metadata` output used for rendering.
type Metadata struct {
	Packages []*Package `json:"packages"`
}

// FindPackage returns the first package with the given name, or nil.
func (m *Metadata) FindPackage(name string) *Package {
	if m == nil {
		return nil
	}
	for _, p := range m.Packages {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Package describes one crate in the package graph.
type Package struct {
	Name         string              `json:"name"`
	Version      string              `json:"version"`
	Description  string              `json:"description"`
	Repository   string              `json:"repository"`
	License      string              `json:"license"`
	Features     map[string][]string `json:"features"`
	Dependencies []*Dependency       `json:"dependencies"`
}

// Dependency is a declared dependency of a package.
type Dependency struct {
	Name     string `json:"name"`
	Req      string `json:"req"`
	Kind     string `json:"kind"`
	Optional bool   `json:"optional"`
}
