// ABOUTME: Title sanitization for filesystem-safe document names
// ABOUTME: Strips unsafe characters and decodes common HTML entities

package render

import (
	"regexp"
	"strings"
)

// unsafeTitleChars is the exact character set stripped from titles before
// they become part of a document name. Stable across releases: changing it
// would re-derive different names for the same items.
var unsafeTitleChars = regexp.MustCompile("[*\"\\\\<>/:|?#\r\n^]")

// SanitizeTitle strips filesystem-unsafe characters from a rendered title.
// Characters are removed, not replaced, matching the names of documents
// materialized by earlier runs.
func SanitizeTitle(title string) string {
	return unsafeTitleChars.ReplaceAllString(title, "")
}

// entityReplacer handles the entities that survive feed parsing in titles.
// Replacement is a single pass, so "&amp;lt;" decodes to "&lt;" and not "<".
var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#x27;", "'",
	"&#39;", "'",
	"&#x2F;", "/",
	"&amp;", "&",
)

// DecodeEntities decodes common HTML entities in a title.
func DecodeEntities(s string) string {
	return entityReplacer.Replace(s)
}
