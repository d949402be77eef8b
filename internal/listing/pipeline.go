package listing

import (
	"listing-pipeline/internal/csvio"
)

// ScrubSentinel collapses the textual "missing value" tokens the scraper's
// upstream tooling leaks into cells. After this, absence has exactly one
// representation: the empty string at the cell level, NULL at the field
// level. Applied once at ingestion; typed fields cannot reintroduce the
// tokens later.
func ScrubSentinel(s string) string {
	switch s {
	case "nan", "NaN", "None":
		return ""
	}
	return s
}

// Transform runs the full row pipeline over a decoded table: canonical
// column renaming, value parsing, address/identity synthesis, and the drop
// of fully-empty records. The result carries exactly the fixed output
// schema: extra input columns never materialize, missing ones read as
// NULL fields.
func Transform(t *csvio.Table) []Listing {
	// First occurrence wins when a raw and an already-canonical column
	// collide; renaming canonical names is a no-op either way.
	index := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		name := CanonicalName(h)
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	listings := make([]Listing, 0, len(t.Rows))
	for _, raw := range t.Rows {
		row := make(Row, len(index))
		for name, pos := range index {
			if pos < len(raw) {
				row[name] = ScrubSentinel(raw[pos])
			}
		}

		l := FromRow(row)
		if l.IsEmpty() {
			continue
		}
		listings = append(listings, l)
	}

	return listings
}
