package cratedoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a rustdoc docblock,
	// into Markdown.
	Convert(html string) (string, error)
}
