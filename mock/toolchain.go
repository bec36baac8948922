package mock

import (
	"context"

	"github.com/fwojciec/cratedoc"
)

var (
	_ cratedoc.Toolchain = (*Toolchain)(nil)
	_ cratedoc.Workspace = (*Workspace)(nil)
)

// Toolchain is a mock implementation of cratedoc.Toolchain.
type Toolchain struct {
	CreateWorkspaceFn func(ref cratedoc.Reference) (cratedoc.Workspace, error)
}

func (t *Toolchain) CreateWorkspace(ref cratedoc.Reference) (cratedoc.Workspace, error) {
	return t.CreateWorkspaceFn(ref)
}

// Workspace is a mock implementation of cratedoc.Workspace.
type Workspace struct {
	DirFn             func() string
	DocDirFn          func() string
	LockFn            func(ctx context.Context) error
	BuildFn           func(ctx context.Context) error
	DocFn             func(ctx context.Context) error
	ResolvedVersionFn func() (string, error)
	MetadataFn        func(ctx context.Context) (*cratedoc.Metadata, error)
	TreeFn            func(ctx context.Context) (string, error)
	CloseFn           func() error
}

func (w *Workspace) Dir() string {
	return w.DirFn()
}

func (w *Workspace) DocDir() string {
	return w.DocDirFn()
}

func (w *Workspace) Lock(ctx context.Context) error {
	return w.LockFn(ctx)
}

func (w *Workspace) Build(ctx context.Context) error {
	return w.BuildFn(ctx)
}

func (w *Workspace) Doc(ctx context.Context) error {
	return w.DocFn(ctx)
}

func (w *Workspace) ResolvedVersion() (string, error) {
	return w.ResolvedVersionFn()
}

func (w *Workspace) Metadata(ctx context.Context) (*cratedoc.Metadata, error) {
	return w.MetadataFn(ctx)
}

func (w *Workspace) Tree(ctx context.Context) (string, error) {
	return w.TreeFn(ctx)
}

func (w *Workspace) Close() error {
	return w.CloseFn()
}
