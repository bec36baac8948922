package mock

import "github.com/fwojciec/cratedoc"

var (
	_ cratedoc.Scraper = (*Scraper)(nil)
	_ cratedoc.DocTree = (*DocTree)(nil)
)

// Scraper is a mock implementation of cratedoc.Scraper.
type Scraper struct {
	CrateDocsFn   func(html string) (string, error)
	ExampleCodeFn func(html string) (string, error)
}

func (s *Scraper) CrateDocs(html string) (string, error) {
	return s.CrateDocsFn(html)
}

func (s *Scraper) ExampleCode(html string) (string, error) {
	return s.ExampleCodeFn(html)
}

// DocTree is a mock implementation of cratedoc.DocTree.
type DocTree struct {
	IndexFn        func(docDir string) (string, error)
	ItemsFn        func(docDir string) ([]string, error)
	ExamplePagesFn func(docDir string) (map[string]string, error)
}

func (d *DocTree) Index(docDir string) (string, error) {
	return d.IndexFn(docDir)
}

func (d *DocTree) Items(docDir string) ([]string, error) {
	return d.ItemsFn(docDir)
}

func (d *DocTree) ExamplePages(docDir string) (map[string]string, error) {
	return d.ExamplePagesFn(docDir)
}
