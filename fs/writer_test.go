package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/cratedoc"
	"github.com/fwojciec/cratedoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFragmentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  cratedoc.Reference
		want string
	}{
		{name: "bare name", ref: cratedoc.Reference{Name: "serde"}, want: "serde.md"},
		{name: "with version", ref: cratedoc.Reference{Name: "serde", Version: "1.0.0"}, want: "serde@1.0.0.md"},
		{name: "hyphenated name", ref: cratedoc.Reference{Name: "serde-json"}, want: "serde-json.md"},
		{name: "requirement operators", ref: cratedoc.Reference{Name: "tokio", Version: ">=1, <2"}, want: "tokio@_1_2.md"},
		{name: "path separators", ref: cratedoc.Reference{Name: "../etc"}, want: ".._etc.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.FragmentPath(tt.ref))
		})
	}
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fs.ComputeHash("# serde"), fs.ComputeHash("# serde"))
	assert.NotEqual(t, fs.ComputeHash("# serde"), fs.ComputeHash("# tokio"))
}

// splitFrontmatter returns the decoded frontmatter and the body.
func splitFrontmatter(t *testing.T, content string) (map[string]any, string) {
	t.Helper()
	require.True(t, strings.HasPrefix(content, "---\n"))
	header, body, ok := strings.Cut(strings.TrimPrefix(content, "---\n"), "---\n\n")
	require.True(t, ok)

	var fm map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(header), &fm))
	return fm, body
}

func testFragment() *cratedoc.Fragment {
	content := cratedoc.FormatDocument("serde", "1.0.210", []cratedoc.Section{
		{Title: cratedoc.SectionItems, Body: "- de"},
		{Title: cratedoc.SectionDependencyTree, Body: "```\n# not a heading\n```"},
		{Title: cratedoc.SectionExamples, Body: "## basic\n\n```rust\nfn main() {}\n```"},
	})
	return &cratedoc.Fragment{
		Reference:   cratedoc.Reference{Name: "serde", Version: "1.0"},
		Content:     content,
		Source:      "https://docs.rs/serde",
		GeneratedAt: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
	}
}

func TestFormatFragment(t *testing.T) {
	t.Parallel()

	f := testFragment()

	got, err := fs.FormatFragment(f)
	require.NoError(t, err)

	fm, body := splitFrontmatter(t, got)
	assert.Equal(t, "https://docs.rs/serde", fm["source"])
	assert.Equal(t, "serde", fm["crate"])
	assert.Equal(t, "1.0", fm["requested"])
	assert.Equal(t, fs.ComputeHash(f.Content), fm["hash"])
	assert.Equal(t, []any{
		map[string]any{"level": 1, "title": "Available Modules and Items", "anchor": "available-modules-and-items"},
		map[string]any{"level": 1, "title": "Dependency Tree", "anchor": "dependency-tree"},
		map[string]any{"level": 1, "title": "Examples", "anchor": "examples"},
		map[string]any{"level": 2, "title": "basic", "anchor": "basic"},
	}, fm["sections"])
	assert.Equal(t, f.Content, body)
}

func TestWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ cratedoc.FragmentWriter = &fs.Writer{}
}

func TestWriter_WriteFragment(t *testing.T) {
	t.Parallel()

	t.Run("writes fragment to named file", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		f := testFragment()
		require.NoError(t, w.WriteFragment(context.Background(), f))

		content, err := os.ReadFile(filepath.Join(baseDir, "serde@1.0.md"))
		require.NoError(t, err)
		_, body := splitFrontmatter(t, string(content))
		assert.Equal(t, f.Content, body)

		_, err = os.Stat(filepath.Join(baseDir, "serde@1.0.md.tmp"))
		assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
	})

	t.Run("creates base directory", func(t *testing.T) {
		t.Parallel()

		baseDir := filepath.Join(t.TempDir(), "out", "crates")
		w := fs.NewWriter(baseDir)

		require.NoError(t, w.WriteFragment(context.Background(), testFragment()))

		_, err := os.Stat(filepath.Join(baseDir, "serde@1.0.md"))
		require.NoError(t, err)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)
		f := testFragment()
		require.NoError(t, w.WriteFragment(context.Background(), f))

		f.Content = "# serde (version 1.0.211)\n"
		require.NoError(t, w.WriteFragment(context.Background(), f))

		content, err := os.ReadFile(filepath.Join(baseDir, "serde@1.0.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "1.0.211")
	})

	t.Run("validates fragment", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.WriteFragment(context.Background(), &cratedoc.Fragment{Content: "x"})

		require.Error(t, err)
		assert.Equal(t, cratedoc.EINVALID, cratedoc.ErrorCode(err))
	})
}
