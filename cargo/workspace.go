package cargo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cratedoc"
)

// Ensure Workspace implements cratedoc.Workspace at compile time.
var _ cratedoc.Workspace = (*Workspace)(nil)

// Workspace is a cargo project in a temporary directory. All commands run
// with the project as working directory and its own target directory.
type Workspace struct {
	binary string
	dir    string
	ref    cratedoc.Reference
}

// Dir returns the project root.
func (w *Workspace) Dir() string {
	return w.dir
}

// DocDir returns target/doc/<lib name>.
func (w *Workspace) DocDir() string {
	return filepath.Join(w.dir, "target", "doc", w.ref.LibName())
}

// Lock runs "cargo update" to write Cargo.lock.
func (w *Workspace) Lock(ctx context.Context) error {
	_, err := w.Run(ctx, "update")
	return err
}

// Build runs "cargo build".
func (w *Workspace) Build(ctx context.Context) error {
	_, err := w.Run(ctx, "build")
	return err
}

// Doc documents the crate, private items included, without its dependencies.
// Once Cargo.lock exists the package is named with its locked version, so
// a graph holding two versions of the crate does not make it ambiguous.
func (w *Workspace) Doc(ctx context.Context) error {
	spec := w.ref.Name
	if version, err := w.ResolvedVersion(); err == nil {
		spec += "@" + version
	}
	_, err := w.Run(ctx, "doc", "--no-deps", "--document-private-items", "--package", spec)
	return err
}

// ResolvedVersion returns the locked version of the crate.
func (w *Workspace) ResolvedVersion() (string, error) {
	lock, err := ReadLockfile(filepath.Join(w.dir, "Cargo.lock"))
	if err != nil {
		return "", err
	}
	version, ok := lock.DependencyVersion(projectName, w.ref.Name)
	if !ok {
		return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "crate %q not in Cargo.lock", w.ref.Name)
	}
	return version, nil
}

// Metadata runs "cargo metadata" and decodes its JSON output.
func (w *Workspace) Metadata(ctx context.Context) (*cratedoc.Metadata, error) {
	out, err := w.Run(ctx, "metadata", "--format-version=1")
	if err != nil {
		return nil, err
	}
	var md cratedoc.Metadata
	if err := json.Unmarshal([]byte(out), &md); err != nil {
		return nil, cratedoc.Errorf(cratedoc.EINVALID, "decode cargo metadata: %v", err)
	}
	return &md, nil
}

// Tree runs "cargo tree" with feature edges.
func (w *Workspace) Tree(ctx context.Context) (string, error) {
	return w.Run(ctx, "tree", "--edges", "features")
}

// Close removes the project directory and everything built in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}

// Run executes a cargo subcommand in the workspace and returns stdout.
// Stderr is captured separately and included in error messages.
func (w *Workspace) Run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, w.binary, args...)
	command.Dir = w.dir
	command.Env = append(os.Environ(), "CARGO_TARGET_DIR="+filepath.Join(w.dir, "target"))
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", formatError(w.binary, args, &stderr, err)
	}
	return stdout.String(), nil
}

// formatError produces an error message for a failed cargo command,
// preferring stderr output (which contains the actual cargo error) over
// the generic exec error.
func formatError(binary string, args []string, stderr *bytes.Buffer, err error) error {
	commandString := filepath.Base(binary) + " " + strings.Join(args, " ")
	stderrText := strings.TrimSpace(stderr.String())
	if stderrText != "" {
		return fmt.Errorf("%s: %w (stderr: %s)", commandString, err, stderrText)
	}
	return fmt.Errorf("%s: %w", commandString, err)
}
