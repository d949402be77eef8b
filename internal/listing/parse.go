package listing

import (
	"encoding/json"
	"regexp"
	"strings"
)

var nonDigitRegexp = regexp.MustCompile(`\D`)

// NormalizeStatus maps scraper status labels onto the canonical vocabulary.
// Unmapped values (e.g. "Withdrawn") pass through unchanged; empty stays empty.
func NormalizeStatus(status string) string {
	if mapped, ok := StatusMapping[status]; ok {
		return mapped
	}
	return status
}

// SplitName splits a full name into (first, middle, last) on whitespace,
// splitting at most twice so multi-word last names stay intact.
// Examples:
//
//	"Jane Q Public"      -> ("Jane", "Q", "Public")
//	"Jane Q Public Jr."  -> ("Jane", "Q", "Public Jr.")
//	"Cher"               -> ("Cher", "", "")
//	""                   -> ("", "", "")
func SplitName(full string) (first, middle, last string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 3)
	first = parts[0]
	if len(parts) > 1 {
		middle = parts[1]
	}
	if len(parts) > 2 {
		last = parts[2]
	}
	return first, middle, last
}

// SplitEmail splits a comma-separated email field on the first comma.
// A single address leaves email2 empty; empty input leaves both empty.
func SplitEmail(email string) (email1, email2 string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ""
	}
	if idx := strings.Index(email, ","); idx >= 0 {
		return email[:idx], strings.TrimSpace(email[idx+1:])
	}
	return email, ""
}

// TruncatePhone strips everything but digits and keeps the last 10,
// discarding country-code prefixes. "+1 (555) 123-4567" becomes "5551234567".
func TruncatePhone(phone string) string {
	digits := nonDigitRegexp.ReplaceAllString(phone, "")
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// OpenHouse is the first entry of a scraped open-house schedule.
// StartTimeMillis is nil when the payload omits the start time.
type OpenHouse struct {
	StartTimeMillis *int64
	Company         string
	ContactName     string
	Valid           bool
}

// openHouseEntry mirrors the scraper's JSON payload. Only the fields the
// pipeline extracts are declared; the rest of the object is ignored.
type openHouseEntry struct {
	StartTimeMillis *int64 `json:"startTimeMillis"`
	Contact         struct {
		Company     string `json:"company"`
		ContactName string `json:"contactName"`
	} `json:"contact"`
}

// ParseOpenHouse extracts (startTimeMillis, contact.company,
// contact.contactName) from the first element of the open_house JSON array.
// Anything unparseable (empty input, non-JSON, non-array, empty array)
// degrades to an invalid OpenHouse rather than an error.
func ParseOpenHouse(raw string) OpenHouse {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OpenHouse{}
	}

	var entries []openHouseEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil || len(entries) == 0 {
		return OpenHouse{}
	}

	first := entries[0]
	return OpenHouse{
		StartTimeMillis: first.StartTimeMillis,
		Company:         first.Contact.Company,
		ContactName:     first.Contact.ContactName,
		Valid:           true,
	}
}
