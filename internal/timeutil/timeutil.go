// ABOUTME: Publish date normalization for materialized document names
// ABOUTME: Formats feed-supplied dates as a fixed, sortable DD.MM.YY display string

package timeutil

import (
	"github.com/araddon/dateparse"
)

// displayLayout is the fixed day.month.two-digit-year form used in
// document names, computed against UTC.
const displayLayout = "02.01.06"

// FormatPubDate normalizes a feed item's publish date for use in a
// document name. When pubDate is present and parseable it is formatted
// as DD.MM.YY (UTC). When pubDate is absent, isoDate is returned
// unmodified. An unparseable pubDate also falls back to isoDate; the
// result may be empty but the function never fails, so a garbage date
// can never abort an otherwise valid item.
func FormatPubDate(pubDate, isoDate string) string {
	if pubDate == "" {
		return isoDate
	}
	t, err := dateparse.ParseAny(pubDate)
	if err != nil {
		return isoDate
	}
	return t.UTC().Format(displayLayout)
}
