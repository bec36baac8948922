// Package goquery scrapes rustdoc-generated HTML with PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cratedoc"
)

// Ensure Scraper implements cratedoc.Scraper at compile time.
var _ cratedoc.Scraper = (*Scraper)(nil)

// docblockSelectors locate the crate-level docblock, newest rustdoc layout
// first.
var docblockSelectors = []string{
	"#main-content details.top-doc .docblock",
	"#main-content > .docblock",
	".docblock",
}

// chromeSelectors match rustdoc UI elements that are not documentation.
const chromeSelectors = "a.doc-anchor, a.anchor, button, .tooltip, .since, summary.hideme, script, style"

// crateDocsRe isolates the crate prose in the flattened page text: it
// starts after the "Crate <name> ... Documentation" heading and stops at
// the first item-kind section heading.
var crateDocsRe = regexp.MustCompile(`(?s)Crate\s+\S+.*?Documentation(.*?)\b(?:Modules?|Structs?|Traits?|Enums?|Type|Macros?|Constants?|Statics?|Functions?|Derive)\b`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Scraper extracts crate docs and example code from rustdoc HTML.
type Scraper struct {
	// Converter renders the crate docblock as Markdown.
	// When nil, the docblock's plain text is used.
	Converter cratedoc.Converter
}

// NewScraper creates a new Scraper that converts docblocks with conv.
func NewScraper(conv cratedoc.Converter) *Scraper {
	return &Scraper{Converter: conv}
}

// CrateDocs returns the crate-level documentation of a crate index page.
// It prefers the structured docblock and falls back to a text heuristic
// when the page layout is not recognized.
func (s *Scraper) CrateDocs(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", cratedoc.Errorf(cratedoc.EINVALID, "failed to parse HTML: %v", err)
	}

	if docs := s.docblock(doc); docs != "" {
		return docs, nil
	}

	doc.Find(chromeSelectors).Remove()
	text := collapseWhitespace(doc.Find("body").Text())
	if m := crateDocsRe.FindStringSubmatch(text); m != nil {
		if docs := strings.TrimSpace(m[1]); docs != "" {
			return docs, nil
		}
	}

	return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "no crate documentation found")
}

func (s *Scraper) docblock(doc *goquery.Document) string {
	for _, selector := range docblockSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		sel.Find(chromeSelectors).Remove()
		markRustCode(sel)

		if s.Converter != nil {
			if h, err := sel.Html(); err == nil {
				if md, err := s.Converter.Convert(h); err == nil && md != "" {
					return md
				}
			}
		}
		if text := collapseWhitespace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// markRustCode tags rustdoc code blocks so the Markdown converter emits
// ```rust fences.
func markRustCode(sel *goquery.Selection) {
	sel.Find("pre.rust > code, pre.rust-example-rendered > code").Each(func(_ int, code *goquery.Selection) {
		code.SetAttr("class", "language-rust")
	})
}

// lineNumberSelectors match the line-number gutters rustdoc puts before the
// code on source pages.
const lineNumberSelectors = "pre.src-line-numbers, pre.line-numbers"

// ExampleCode returns the unescaped text of the first <pre> block that is
// not a line-number gutter.
func (s *Scraper) ExampleCode(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", cratedoc.Errorf(cratedoc.EINVALID, "failed to parse HTML: %v", err)
	}

	pre := doc.Find("pre").Not(lineNumberSelectors).First()
	if pre.Length() == 0 {
		return "", cratedoc.Errorf(cratedoc.ENOTFOUND, "no code block found")
	}
	return pre.Text(), nil
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
