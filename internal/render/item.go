// ABOUTME: Feed item rendering pipeline: content conversion, category expansion, templating
// ABOUTME: Produces final document text from a template and {feed, item} documents

package render

import (
	"strings"

	"github.com/harper/feedvault/internal/content"
	"github.com/harper/feedvault/internal/docmodel"
)

// categoriesTag is special-cased before generic rendering: a logic-less
// variable tag cannot expand a repeated field into a bulleted list.
const categoriesTag = "{{item.categories}}"

// PrepareItem overwrites the item's content field with its markdown
// conversion. This is a one-way transformation done once per sync pass;
// after it runs the original HTML is gone from the document.
func PrepareItem(item docmodel.Doc) {
	if html, ok := item.Lookup("content").AsString(); ok {
		item["content"] = docmodel.String(content.ToMarkdown(html))
	}
}

// ExpandCategories replaces the literal {{item.categories}} placeholder
// with a newline-joined, "- "-prefixed list built from the item's
// categories. Items without categories expand to the empty string.
func ExpandCategories(template string, item docmodel.Doc) string {
	if !strings.Contains(template, categoriesTag) {
		return template
	}
	var b strings.Builder
	if cats, ok := item.Lookup("categories").AsList(); ok {
		for _, c := range cats {
			b.WriteString("- ")
			b.WriteString(c.Text())
			b.WriteString("\n")
		}
	}
	return strings.ReplaceAll(template, categoriesTag, b.String())
}

// RenderItem expands a template against a {feed, item} pair: category
// expansion first, then generic rendering. Callers are expected to have
// run PrepareItem on the item beforehand.
func RenderItem(template string, feed, item docmodel.Doc) string {
	expanded := ExpandCategories(template, item)
	return Render(expanded, docmodel.Doc{
		"feed": docmodel.Nested(feed),
		"item": docmodel.Nested(item),
	})
}
