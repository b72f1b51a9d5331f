// ABOUTME: Conversion of gofeed feeds and items into the document model
// ABOUTME: Surfaces standard fields plus namespaced XML extensions for path lookup

package docmodel

import (
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/extensions"
)

// FromFeed converts the feed-level fields of a parsed feed into a document.
// Namespaced XML elements land under "extensions" so custom field paths
// like "extensions.itunes.author" can reach them.
func FromFeed(f *gofeed.Feed) Doc {
	d := Doc{}
	if f == nil {
		return d
	}
	setString(d, "title", f.Title)
	setString(d, "description", f.Description)
	setString(d, "link", f.Link)
	setString(d, "feedLink", f.FeedLink)
	setString(d, "language", f.Language)
	setString(d, "copyright", f.Copyright)
	setString(d, "published", f.Published)
	setString(d, "updated", f.Updated)
	if f.Image != nil {
		img := Doc{}
		setString(img, "url", f.Image.URL)
		setString(img, "title", f.Image.Title)
		if len(img) > 0 {
			d["image"] = Nested(img)
		}
	}
	if len(f.Categories) > 0 {
		d["categories"] = Strings(f.Categories)
	}
	mergeCustom(d, f.Custom)
	if ext := fromExtensions(f.Extensions); len(ext) > 0 {
		d["extensions"] = Nested(ext)
	}
	return d
}

// FromItem converts a single feed item into a document. The guid falls back
// to the item link when the feed supplies none, so link-only feeds still
// deduplicate; items with neither are left without a guid and are never
// treated as duplicates.
func FromItem(item *gofeed.Item) Doc {
	d := Doc{}
	if item == nil {
		return d
	}
	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}
	setString(d, "guid", guid)
	setString(d, "title", item.Title)
	setString(d, "link", item.Link)
	setString(d, "description", item.Description)
	setString(d, "pubDate", item.Published)

	// isoDate mirrors the parsed publish timestamp in RFC 3339, the shape
	// downstream consumers expect when pubDate is missing or unusable.
	if t := publishedTime(item); t != nil {
		d["isoDate"] = String(t.UTC().Format(time.RFC3339))
	}

	content := item.Content
	if content == "" {
		content = item.Description
	}
	setString(d, "content", content)

	if item.Author != nil {
		setString(d, "author", item.Author.Name)
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		setString(d, "author", item.Authors[0].Name)
	}

	if len(item.Categories) > 0 {
		d["categories"] = Strings(item.Categories)
	}

	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		enc := Doc{}
		setString(enc, "url", item.Enclosures[0].URL)
		setString(enc, "type", item.Enclosures[0].Type)
		setString(enc, "length", item.Enclosures[0].Length)
		if len(enc) > 0 {
			d["enclosure"] = Nested(enc)
		}
	}

	mergeCustom(d, item.Custom)
	if ext := fromExtensions(item.Extensions); len(ext) > 0 {
		d["extensions"] = Nested(ext)
	}
	return d
}

// ApplyFieldMap projects mapped fields onto the document: for each
// name -> path pair, the value at path is surfaced under name. Paths that
// resolve to nothing are skipped so existing fields are never clobbered
// by an absent mapping.
func ApplyFieldMap(d Doc, fields map[string]string) {
	for name, path := range fields {
		if v := d.Lookup(path); !v.IsAbsent() {
			d[name] = v
		}
	}
}

func setString(d Doc, name, s string) {
	if s != "" {
		d[name] = String(s)
	}
}

func mergeCustom(d Doc, custom map[string]string) {
	for name, value := range custom {
		if _, taken := d[name]; !taken && value != "" {
			d[name] = String(value)
		}
	}
}

func publishedTime(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

func fromExtensions(exts ext.Extensions) Doc {
	d := Doc{}
	for prefix, byName := range exts {
		ns := Doc{}
		for name, values := range byName {
			switch len(values) {
			case 0:
			case 1:
				ns[name] = fromExtension(values[0])
			default:
				list := make([]Value, 0, len(values))
				for _, e := range values {
					list = append(list, fromExtension(e))
				}
				ns[name] = List(list)
			}
		}
		if len(ns) > 0 {
			d[prefix] = Nested(ns)
		}
	}
	return d
}

func fromExtension(e ext.Extension) Value {
	if len(e.Children) == 0 && len(e.Attrs) == 0 {
		return String(e.Value)
	}
	d := Doc{}
	setString(d, "value", e.Value)
	for attr, value := range e.Attrs {
		setString(d, attr, value)
	}
	for name, children := range e.Children {
		if len(children) > 0 {
			d.Set(name, fromExtension(children[0]))
		}
	}
	return Nested(d)
}
