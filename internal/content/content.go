// ABOUTME: HTML content conversion for feed items
// ABOUTME: Detects HTML fragments and rewrites them as markdown before templating

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches the opening tags that show up in real-world feed
// content. Bare angle brackets ("5 < 10") do not match.
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|u|code|pre|blockquote|figure|article|section)(\s[^>]*)?/?>`)

// IsHTML reports whether the string looks like an HTML fragment rather
// than plain text or markdown.
func IsHTML(s string) bool {
	if strings.Contains(s, "<!DOCTYPE") || strings.Contains(s, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(s)
}

// ToMarkdown converts an HTML fragment to markdown. Input that does not
// look like HTML is returned unchanged, which makes the conversion
// idempotent: running it over already-converted text is a no-op. A
// conversion failure also returns the input rather than an error, so a
// malformed fragment degrades to raw text instead of losing the item.
func ToMarkdown(s string) string {
	if s == "" || !IsHTML(s) {
		return s
	}

	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(md)
}
