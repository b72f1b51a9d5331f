// ABOUTME: GUID index over the existing document corpus
// ABOUTME: Rebuilt from scratch each sync pass by scanning every document for its guid line

package sync

import (
	"fmt"
	"regexp"
	"strings"
)

// guidLine matches the materialization marker embedded in every document.
// The format is a persisted-state contract: documents written by any
// earlier version carry the same line, so it must not change.
var guidLine = regexp.MustCompile(`(?m)^guid:\s*(.+)$`)

// GuidIndex answers whether an item guid has already been materialized.
// It is a private per-run snapshot; cost of a rebuild is linear in the
// number of existing documents.
type GuidIndex map[string]struct{}

// BuildGuidIndex scans every document in the store and collects its guid.
// Documents without a guid line contribute an empty-string entry, which
// is harmless because empty guids are never consulted for dedup.
func BuildGuidIndex(store DocumentStore) (GuidIndex, error) {
	paths, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	idx := make(GuidIndex, len(paths))
	for _, p := range paths {
		text, err := store.Read(p)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", p, err)
		}
		idx[ExtractGuid(text)] = struct{}{}
	}
	return idx, nil
}

// ExtractGuid pulls the guid out of a document's content via the first
// line matching "guid: <value>". Documents without one yield "".
func ExtractGuid(text string) string {
	m := guidLine.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Has reports whether the guid is already materialized.
func (idx GuidIndex) Has(guid string) bool {
	_, ok := idx[guid]
	return ok
}
