package listing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Pre-compiled regex for numeric validation (avoids recompilation on each call)
var numericRegexp = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Date layouts the scraper emits, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
}

// ToPgText converts a string to a nullable text value.
// Empty and whitespace-only strings become NULL.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate parses a date string into a nullable date, trying each known
// layout. Unparseable input becomes NULL rather than an error.
func ToPgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// ToPgNumeric parses a decimal string into a nullable numeric, tolerating
// currency symbols and thousands separators, so "$1,250,000" parses as 1250000.
// Unparseable input becomes NULL.
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if !numericRegexp.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}

	return n
}

// ToPgInt8 parses an integer string into a nullable int8. Scrapers emit
// integral counts as "3" or "3.0"; both parse, but "3.5" becomes NULL.
func ToPgInt8(s string) pgtype.Int8 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return pgtype.Int8{Valid: false}
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return pgtype.Int8{Int64: i, Valid: true}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: int64(f), Valid: true}
}
