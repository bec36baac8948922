package cratedoc

// Scraper pulls content out of rustdoc-generated HTML pages.
type Scraper interface {
	// CrateDocs returns the crate-level prose from the crate's index page.
	// Returns ENOTFOUND if the page has no recognizable crate docs.
	CrateDocs(html string) (string, error)

	// ExampleCode returns the text of the first <pre> block of an example page.
	// Returns ENOTFOUND if the page has none.
	ExampleCode(html string) (string, error)
}

// Example is the source of one example program.
type Example struct {
	Name string
	Code string
}

// DocTree reads a crate's generated documentation directory.
type DocTree interface {
	// Index returns the HTML of the crate's top-level index.html.
	// Returns ENOTFOUND if it was not generated.
	Index(docDir string) (string, error)

	// Items returns the paths of all HTML pages below docDir, relative to
	// it, excluding the top-level index.html.
	Items(docDir string) ([]string, error)

	// ExamplePages returns the HTML of each page in docDir/examples keyed by
	// the page's base name without extension.
	// Returns ENOTFOUND if there is no examples directory.
	ExamplePages(docDir string) (map[string]string, error)
}
