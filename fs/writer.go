package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cratedoc"
	"gopkg.in/yaml.v3"
)

var unsafePathRe = regexp.MustCompile(`[^A-Za-z0-9._@-]+`)

// FragmentPath returns the file name for a fragment:
// serde → serde.md, serde@1.0 → serde@1.0.md.
// Characters that are awkward in file names are replaced with "_".
func FragmentPath(ref cratedoc.Reference) string {
	name := ref.Name
	if ref.Version != "" {
		name += "@" + ref.Version
	}
	return strings.Trim(unsafePathRe.ReplaceAllString(name, "_"), "_") + ".md"
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

type frontmatter struct {
	Source    string             `yaml:"source"`
	Crate     string             `yaml:"crate"`
	Requested string             `yaml:"requested,omitempty"`
	Hash      string             `yaml:"hash"`
	Generated string             `yaml:"generated"`
	Sections  []cratedoc.Heading `yaml:"sections,omitempty"`
}

// FormatFragment formats a fragment with YAML frontmatter listing its
// sections and example subsections with their anchors.
func FormatFragment(f *cratedoc.Fragment) (string, error) {
	fm := frontmatter{
		Source:    f.Source,
		Crate:     f.Reference.Name,
		Requested: f.Reference.Version,
		Hash:      ComputeHash(f.Content),
		Generated: f.GeneratedAt.Format("2006-01-02"),
	}
	for i, h := range cratedoc.ExtractHeadings(f.Content, 2) {
		if i == 0 {
			continue // document title
		}
		fm.Sections = append(fm.Sections, h)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(f.Content)
	return b.String(), nil
}

// Ensure Writer implements cratedoc.FragmentWriter at compile time.
var _ cratedoc.FragmentWriter = (*Writer)(nil)

// Writer writes fragments as markdown files to a directory.
// Each file is written to a temporary name and renamed into place so
// readers never see a partial document.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteFragment writes a fragment to disk as a markdown file.
func (w *Writer) WriteFragment(ctx context.Context, f *cratedoc.Fragment) error {
	if err := f.Validate(); err != nil {
		return err
	}

	content, err := FormatFragment(f)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	finalPath := filepath.Join(w.baseDir, FragmentPath(f.Reference))
	tempPath := finalPath + ".tmp"
	if err := os.WriteFile(tempPath, []byte(content), 0644); err != nil {
		return err
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	return nil
}
