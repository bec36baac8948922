// Package cargo implements cratedoc.Toolchain on top of the cargo CLI.
// Each Workspace is a throwaway binary project in its own temporary
// directory whose only dependency is the crate being documented.
package cargo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/cratedoc"
)

// DefaultBinary is the cargo executable looked up on PATH.
const DefaultBinary = "cargo"

// projectName is the package name of the synthesized project.
const projectName = "doc-fetcher"

// Ensure Toolchain implements cratedoc.Toolchain at compile time.
var _ cratedoc.Toolchain = (*Toolchain)(nil)

// Toolchain creates cargo workspaces.
type Toolchain struct {
	binary  string
	tempDir string
}

// Option configures a Toolchain.
type Option func(*Toolchain)

// WithBinary sets the cargo executable.
// Defaults to DefaultBinary if not specified.
func WithBinary(path string) Option {
	return func(t *Toolchain) {
		t.binary = path
	}
}

// WithTempDir sets the parent directory for workspaces.
// Defaults to os.TempDir() if not specified.
func WithTempDir(dir string) Option {
	return func(t *Toolchain) {
		t.tempDir = dir
	}
}

// NewToolchain creates a new Toolchain.
func NewToolchain(opts ...Option) *Toolchain {
	t := &Toolchain{binary: DefaultBinary}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Available reports whether the cargo binary can be found.
func (t *Toolchain) Available() bool {
	_, err := exec.LookPath(t.binary)
	return err == nil
}

// CreateWorkspace writes Cargo.toml and src/main.rs for a project that
// depends on ref into a fresh temporary directory.
func (t *Toolchain) CreateWorkspace(ref cratedoc.Reference) (cratedoc.Workspace, error) {
	if ref.Name == "" {
		return nil, cratedoc.Errorf(cratedoc.EINVALID, "crate name required")
	}

	dir, err := os.MkdirTemp(t.tempDir, "cratedoc-")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	if err := writeProject(dir, ref); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	return &Workspace{binary: t.binary, dir: dir, ref: ref}, nil
}

type manifest struct {
	Package      manifestPackage   `toml:"package"`
	Dependencies map[string]string `toml:"dependencies"`
}

type manifestPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

func writeProject(dir string, ref cratedoc.Reference) error {
	f, err := os.Create(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	m := manifest{
		Package:      manifestPackage{Name: projectName, Version: "0.1.0", Edition: "2021"},
		Dependencies: map[string]string{ref.Name: ref.Requirement()},
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		_ = f.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(src, 0755); err != nil {
		return fmt.Errorf("write main.rs: %w", err)
	}
	return os.WriteFile(filepath.Join(src, "main.rs"), []byte(mainSource(ref)), 0644)
}

// mainSource references the crate so that cargo has to resolve and
// compile it.
func mainSource(ref cratedoc.Reference) string {
	return fmt.Sprintf(`// This file is used to generate documentation for %[1]s
extern crate %[2]s;

fn main() {
    println!("Documentation generator for %[1]s");
}
`, ref.Name, ref.LibName())
}
