package cratedoc

import (
	"fmt"
	"slices"
	"strings"
)

// Section is one titled block of a rendered document.
// A Section with an empty Title renders as its Body alone.
type Section struct {
	Title string
	Body  string
}

// Section titles, in the order the toolchain stage collects them.
const (
	SectionDependencies   = "Dependencies"
	SectionCrateDocs      = "Crate Documentation"
	SectionItems          = "Available Modules and Items"
	SectionDependencyTree = "Dependency Tree"
	SectionExamples       = "Examples"
)

const generationFailed = "Failed to generate detailed documentation for this crate."

// FormatDocument renders the full document for a crate: a heading with
// the resolved version, a description line, then each section.
// Sections are separated by blank lines.
func FormatDocument(name, version string, sections []Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (version %s)\n\nDocumentation for Rust crate: %s\n", name, version, name)

	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(FormatSection(s))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatSection renders a single section with a top-level heading.
func FormatSection(s Section) string {
	body := strings.TrimRight(s.Body, "\n")
	if s.Title == "" {
		return body
	}
	return "# " + s.Title + "\n\n" + body
}

// ItemPath converts a documentation page path relative to the crate's doc
// directory into a Rust-style path:
//
//	de/struct.Deserializer.html → de::struct.Deserializer
//	de/value/index.html         → de::value
func ItemPath(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	rel = strings.TrimSuffix(rel, ".html")
	path := strings.ReplaceAll(rel, "/", "::")
	return strings.TrimSuffix(path, "::index")
}

// SortedItems returns the item paths for the given page paths, sorted
// ascending with duplicates removed.
func SortedItems(pages []string) []string {
	items := make([]string, 0, len(pages))
	for _, p := range pages {
		if item := ItemPath(p); item != "" && item != "index" {
			items = append(items, item)
		}
	}
	slices.Sort(items)
	return slices.Compact(items)
}

// FormatItems renders item paths as a bulleted list.
func FormatItems(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

// FormatDependencies renders declared dependencies as a bulleted list.
// Non-normal dependency kinds and optional dependencies are annotated.
func FormatDependencies(deps []*Dependency) string {
	lines := make([]string, 0, len(deps))
	for _, d := range deps {
		line := fmt.Sprintf("- **%s**: %s", d.Name, d.Req)
		if d.Kind != "" && d.Kind != "normal" {
			line += " (" + d.Kind + ")"
		}
		if d.Optional {
			line += " (optional)"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatDependencyTree embeds the tree output verbatim in a code fence.
func FormatDependencyTree(tree string) string {
	return "```\n" + strings.TrimRight(tree, "\n") + "\n```"
}

// FormatExamples renders each example as a titled Rust code block.
func FormatExamples(examples []Example) string {
	parts := make([]string, 0, len(examples))
	for _, e := range examples {
		parts = append(parts, "## "+e.Name+"\n\n```rust\n"+strings.TrimRight(e.Code, "\n")+"\n```")
	}
	return strings.Join(parts, "\n\n")
}

// FormatPackageSummary renders what the package graph knows about a crate.
// Used when no documentation could be scraped.
func FormatPackageSummary(p *Package) string {
	var b strings.Builder
	b.WriteString(orDefault(p.Description, "No description available"))
	b.WriteString("\n\n**Repository**: ")
	b.WriteString(orDefault(p.Repository, "Not specified"))
	b.WriteString("\n\n**License**: ")
	b.WriteString(orDefault(p.License, "Not specified"))

	if len(p.Features) > 0 {
		names := make([]string, 0, len(p.Features))
		for name := range p.Features {
			names = append(names, name)
		}
		slices.Sort(names)

		b.WriteString("\n\n## Features\n")
		for _, name := range names {
			deps := "No dependencies"
			if len(p.Features[name]) > 0 {
				deps = strings.Join(p.Features[name], ", ")
			}
			fmt.Fprintf(&b, "\n- **%s**: %s", name, deps)
		}
	}

	if len(p.Dependencies) > 0 {
		b.WriteString("\n\n## Dependencies\n\n")
		b.WriteString(FormatDependencies(p.Dependencies))
	}

	return b.String()
}

// FormatRegistryDocument renders registry metadata for a crate whose
// documentation could not be generated.
func FormatRegistryDocument(ref Reference, c *Crate) string {
	version := ref.Version
	if version == "" {
		version = orDefault(c.MaxVersion, "latest")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s (version %s)\n\n", ref.Name, version)
	b.WriteString(orDefault(c.Description, "No description available"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "- **Created**: %s\n", orDefault(c.CreatedAt, "Unknown"))
	fmt.Fprintf(&b, "- **Downloads**: %d\n", c.Downloads)
	fmt.Fprintf(&b, "- **Homepage**: %s\n", orDefault(c.Homepage, "Not specified"))
	fmt.Fprintf(&b, "- **Documentation**: %s\n", orDefault(c.Documentation, "Not specified"))
	fmt.Fprintf(&b, "- **Repository**: %s\n", orDefault(c.Repository, "Not specified"))
	fmt.Fprintf(&b, "- **License**: %s\n", orDefault(c.License, "Not specified"))
	b.WriteString("\n")
	b.WriteString(generationFailed)
	b.WriteString("\n")
	return b.String()
}

// FormatMinimalDocument renders the last templated fallback: the crate
// name and links to its documentation and registry pages.
func FormatMinimalDocument(ref Reference) string {
	return fmt.Sprintf("# %s (version %s)\n\n%s\n\nFor more information, visit:\n- %s\n- %s\n",
		ref.Name, ref.DisplayVersion(), generationFailed, DocsURL(ref.Name), RegistryURL(ref.Name))
}

// FormatFailure renders the one-line message used when nothing else worked.
func FormatFailure(ref Reference) string {
	return fmt.Sprintf("Failed to generate documentation for %s (version %s).", ref.Name, ref.DisplayVersion())
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
