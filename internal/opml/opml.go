// ABOUTME: OPML subscription list parsing for feed imports
// ABOUTME: Flattens nested outlines into feeds with their enclosing folder name

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Feed is one subscription from an OPML document. Folder is the text of
// the outline the feed was nested under, empty at top level.
type Feed struct {
	URL    string
	Title  string
	Folder string
}

type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr"`
	XMLURL   string       `xml:"xmlUrl,attr"`
	Children []outlineXML `xml:"outline"`
}

// Parse reads an OPML document and returns its feeds, flattened.
func Parse(r io.Reader) ([]Feed, error) {
	var doc opmlXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode OPML: %w", err)
	}

	var feeds []Feed
	for _, outline := range doc.Body.Outlines {
		feeds = append(feeds, collect(outline, "")...)
	}
	return feeds, nil
}

// ParseFile reads an OPML file and returns its feeds.
func ParseFile(path string) ([]Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open OPML file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func collect(outline outlineXML, folder string) []Feed {
	if outline.XMLURL != "" {
		title := outline.Title
		if title == "" {
			title = outline.Text
		}
		return []Feed{{URL: outline.XMLURL, Title: title, Folder: folder}}
	}

	// A folder: children inherit its text as their folder name.
	var feeds []Feed
	for _, child := range outline.Children {
		feeds = append(feeds, collect(child, outline.Text)...)
	}
	return feeds
}
