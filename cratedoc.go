// Package cratedoc renders documentation for Rust crates as Markdown
// context for LLM prompts. It builds the crate in a throwaway cargo
// project, scrapes the generated rustdoc HTML, and falls back to the
// crates.io API or a static template when the toolchain cannot help.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., cargo/, goquery/, http/).
package cratedoc

import "strings"

// LoaderName is the fragment loader name under which crate documentation
// is registered with the host prompt tool.
const LoaderName = "rust"

// Reference identifies a crate and an optional version requirement,
// as written on the command line: "serde" or "serde@1.0".
type Reference struct {
	Name    string
	Version string
}

// ParseReference splits an identifier on its first "@".
// The version is kept verbatim and is not validated.
func ParseReference(s string) (Reference, error) {
	name, version, _ := strings.Cut(strings.TrimSpace(s), "@")
	if name == "" {
		return Reference{}, Errorf(EINVALID, "crate name required in %q", s)
	}
	return Reference{Name: name, Version: version}, nil
}

// Requirement returns the version requirement for Cargo.toml.
func (r Reference) Requirement() string {
	if r.Version == "" {
		return "*"
	}
	return r.Version
}

// DisplayVersion returns the requested version, or "latest" when none
// was given.
func (r Reference) DisplayVersion() string {
	if r.Version == "" {
		return "latest"
	}
	return r.Version
}

// LibName returns the crate name as it appears in Rust paths and in the
// rustdoc output directory.
func (r Reference) LibName() string {
	return strings.ReplaceAll(r.Name, "-", "_")
}

func (r Reference) String() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "@" + r.Version
}

// DocsURL returns the docs.rs page for the crate.
func DocsURL(name string) string {
	return "https://docs.rs/" + name
}

// RegistryURL returns the crates.io page for the crate.
func RegistryURL(name string) string {
	return "https://crates.io/crates/" + name
}
