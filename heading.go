package cratedoc

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Heading is a Markdown heading in a rendered document.
type Heading struct {
	Level  int    `yaml:"level"`
	Title  string `yaml:"title"`
	Anchor string `yaml:"anchor"`
}

var (
	headingRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	fenceRe   = regexp.MustCompile("(?s)```.*?```")
)

// ExtractHeadings returns the headings of a rendered document up to and
// including maxLevel, skipping anything inside code fences.
// Anchors are GitHub-style and made unique with numeric suffixes.
func ExtractHeadings(markdown string, maxLevel int) []Heading {
	if markdown == "" {
		return nil
	}

	matches := headingRe.FindAllStringSubmatch(fenceRe.ReplaceAllString(markdown, ""), -1)

	var headings []Heading
	seen := make(map[string]int)
	for _, m := range matches {
		level := len(m[1])
		if level > maxLevel {
			continue
		}
		title := strings.TrimSpace(m[2])
		anchor := anchorFor(title)
		if n, ok := seen[anchor]; ok {
			seen[anchor]++
			anchor += "-" + strconv.Itoa(n)
		} else {
			seen[anchor] = 1
		}
		headings = append(headings, Heading{Level: level, Title: title, Anchor: anchor})
	}
	return headings
}

// anchorFor lowercases a title, keeps letters and digits, and joins words
// with single hyphens.
func anchorFor(title string) string {
	var sb strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			hyphen = false
		case (unicode.IsSpace(r) || r == '-') && !hyphen && sb.Len() > 0:
			sb.WriteRune('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
