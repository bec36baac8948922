package cargo

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/cratedoc"
)

// Lockfile is the part of Cargo.lock needed to find resolved versions.
type Lockfile struct {
	Packages []LockedPackage `toml:"package"`
}

// LockedPackage is one [[package]] entry of Cargo.lock.
type LockedPackage struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Dependencies []string `toml:"dependencies"`
}

// ReadLockfile parses the Cargo.lock at path.
// Returns ENOTFOUND if the file does not exist.
func ReadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, cratedoc.Errorf(cratedoc.ENOTFOUND, "no lock file at %s", path)
	} else if err != nil {
		return nil, err
	}
	return ParseLockfile(string(data))
}

// ParseLockfile decodes Cargo.lock contents.
func ParseLockfile(data string) (*Lockfile, error) {
	var lock Lockfile
	if _, err := toml.Decode(data, &lock); err != nil {
		return nil, cratedoc.Errorf(cratedoc.EINVALID, "parse Cargo.lock: %v", err)
	}
	return &lock, nil
}

// Version returns the version of the first locked package named name.
// Registry packages are preferred over path or git sources.
func (l *Lockfile) Version(name string) (string, bool) {
	var fallback string
	for _, p := range l.Packages {
		if p.Name != name {
			continue
		}
		if strings.HasPrefix(p.Source, "registry+") || strings.HasPrefix(p.Source, "sparse+") {
			return p.Version, true
		}
		if fallback == "" {
			fallback = p.Version
		}
	}
	return fallback, fallback != ""
}

// DependencyVersion returns the version of name that the package root
// depends on directly. Cargo.lock writes a dependency as "name version"
// when several versions of it are locked, and as a bare name otherwise.
func (l *Lockfile) DependencyVersion(root, name string) (string, bool) {
	for _, p := range l.Packages {
		if p.Name != root {
			continue
		}
		for _, dep := range p.Dependencies {
			fields := strings.Fields(dep)
			if len(fields) >= 2 && fields[0] == name {
				return fields[1], true
			}
		}
	}
	return l.Version(name)
}
