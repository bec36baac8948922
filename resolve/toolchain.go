package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/fwojciec/cratedoc"
)

var _ Stage = (*ToolchainStage)(nil)

// ToolchainStage documents a crate by building it in a throwaway cargo
// workspace and scraping the generated rustdoc output.
type ToolchainStage struct {
	Toolchain cratedoc.Toolchain
	DocTree   cratedoc.DocTree
	Scraper   cratedoc.Scraper
	Logger    *slog.Logger
}

// Name implements Stage.
func (s *ToolchainStage) Name() string { return "toolchain" }

// Run creates a workspace, runs the required cargo steps and collects the
// optional sections. The workspace is removed before Run returns.
func (s *ToolchainStage) Run(ctx context.Context, ref cratedoc.Reference) (string, error) {
	ws, err := s.Toolchain.CreateWorkspace(ref)
	if err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := ws.Close(); err != nil {
			s.logger().WarnContext(ctx, "workspace not removed", "dir", ws.Dir(), "err", err)
		}
	}()

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"lock", ws.Lock},
		{"build", ws.Build},
		{"doc", ws.Doc},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return "", fmt.Errorf("%s: %w", step.name, err)
		}
	}

	version := s.resolvedVersion(ws, ref)

	md, err := ws.Metadata(ctx)
	if err != nil {
		s.logger().WarnContext(ctx, "metadata unavailable", "crate", ref.Name, "err", err)
	}
	pkg := md.FindPackage(ref.Name)

	collectors := []struct {
		title   string
		collect func() (string, error)
	}{
		{cratedoc.SectionDependencies, func() (string, error) { return s.dependencies(pkg) }},
		{cratedoc.SectionCrateDocs, func() (string, error) { return s.crateDocs(ws) }},
		{cratedoc.SectionItems, func() (string, error) { return s.items(ws) }},
		{cratedoc.SectionDependencyTree, func() (string, error) { return s.tree(ctx, ws) }},
		{cratedoc.SectionExamples, func() (string, error) { return s.examples(ctx, ws) }},
	}

	var sections []cratedoc.Section
	for _, c := range collectors {
		body, err := c.collect()
		if err != nil {
			s.logSkipped(ctx, c.title, err)
			continue
		}
		sections = append(sections, cratedoc.Section{Title: c.title, Body: body})
	}

	if len(sections) == 0 {
		if pkg == nil {
			return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "no documentation content for %s", ref.Name)
		}
		sections = []cratedoc.Section{{Body: cratedoc.FormatPackageSummary(pkg)}}
	}

	return cratedoc.FormatDocument(ref.Name, version, sections), nil
}

// resolvedVersion prefers the version pinned in Cargo.lock over the
// requested one.
func (s *ToolchainStage) resolvedVersion(ws cratedoc.Workspace, ref cratedoc.Reference) string {
	if v, err := ws.ResolvedVersion(); err == nil && v != "" {
		return v
	}
	if ref.Version != "" {
		return ref.Version
	}
	return "unknown"
}

func (s *ToolchainStage) dependencies(pkg *cratedoc.Package) (string, error) {
	if pkg == nil || len(pkg.Dependencies) == 0 {
		return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "no declared dependencies")
	}
	return cratedoc.FormatDependencies(pkg.Dependencies), nil
}

func (s *ToolchainStage) crateDocs(ws cratedoc.Workspace) (string, error) {
	html, err := s.DocTree.Index(ws.DocDir())
	if err != nil {
		return "", err
	}
	return s.Scraper.CrateDocs(html)
}

func (s *ToolchainStage) items(ws cratedoc.Workspace) (string, error) {
	pages, err := s.DocTree.Items(ws.DocDir())
	if err != nil {
		return "", err
	}
	items := cratedoc.SortedItems(pages)
	if len(items) == 0 {
		return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "no item pages")
	}
	return cratedoc.FormatItems(items), nil
}

func (s *ToolchainStage) tree(ctx context.Context, ws cratedoc.Workspace) (string, error) {
	tree, err := ws.Tree(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(tree) == "" {
		return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "empty dependency tree")
	}
	return cratedoc.FormatDependencyTree(tree), nil
}

func (s *ToolchainStage) examples(ctx context.Context, ws cratedoc.Workspace) (string, error) {
	pages, err := s.DocTree.ExamplePages(ws.DocDir())
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	slices.Sort(names)

	var examples []cratedoc.Example
	for _, name := range names {
		code, err := s.Scraper.ExampleCode(pages[name])
		if err != nil {
			s.logger().DebugContext(ctx, "example skipped", "example", name, "err", err)
			continue
		}
		examples = append(examples, cratedoc.Example{Name: name, Code: code})
	}
	if len(examples) == 0 {
		return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "no example code")
	}
	return cratedoc.FormatExamples(examples), nil
}

// logSkipped logs a missing section. Absent artifacts are expected and
// only logged at debug level.
func (s *ToolchainStage) logSkipped(ctx context.Context, title string, err error) {
	if cratedoc.ErrorCode(err) == cratedoc.ENOTFOUND {
		s.logger().DebugContext(ctx, "section skipped", "section", title, "err", err)
		return
	}
	s.logger().WarnContext(ctx, "section failed", "section", title, "err", err)
}

func (s *ToolchainStage) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
