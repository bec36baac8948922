// Package fs reads rustdoc output from disk and writes rendered fragments
// as Markdown files.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cratedoc"
)

// Ensure DocTree implements cratedoc.DocTree at compile time.
var _ cratedoc.DocTree = (*DocTree)(nil)

// DocTree reads a crate's generated documentation directory.
type DocTree struct{}

// NewDocTree creates a new DocTree.
func NewDocTree() *DocTree {
	return &DocTree{}
}

// Index returns the contents of docDir/index.html.
func (d *DocTree) Index(docDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(docDir, "index.html"))
	if os.IsNotExist(err) {
		return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "no index page in %s", docDir)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// Items walks docDir and returns the slash-separated relative paths of all
// HTML pages except the top-level index.html.
func (d *DocTree) Items(docDir string) ([]string, error) {
	if _, err := os.Stat(docDir); os.IsNotExist(err) {
		return nil, cratedoc.Errorf(cratedoc.ENOTFOUND, "no documentation in %s", docDir)
	}

	var pages []string
	err := filepath.WalkDir(docDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(docDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "index.html" {
			return nil
		}
		pages = append(pages, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// ExamplePages reads every HTML page directly inside docDir/examples.
func (d *DocTree) ExamplePages(docDir string) (map[string]string, error) {
	dir := filepath.Join(docDir, "examples")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, cratedoc.Errorf(cratedoc.ENOTFOUND, "no examples in %s", docDir)
	} else if err != nil {
		return nil, err
	}

	pages := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".html" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		pages[strings.TrimSuffix(entry.Name(), ".html")] = string(data)
	}
	return pages, nil
}
