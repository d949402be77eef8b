package listing

import (
	"strings"

	"github.com/gosimple/slug"
)

// FullAddress joins the address components with ", " in fixed order.
// Missing components contribute an empty segment, so the separator count
// stays constant regardless of which fields are present.
func FullAddress(line1, line2, city, state, zip string) string {
	return strings.Join([]string{line1, line2, city, state, zip}, ", ")
}

// ListingID derives the deterministic listing identity: a URL-safe slug of
// "{mls}-{address_line_1}-{city}-{state}-{zip_code}". Two listings with the
// same components collide on purpose; they are the same listing. Returns
// "" when mls is absent, even if every other component is present.
func ListingID(mls, line1, city, state, zip string) string {
	if strings.TrimSpace(mls) == "" {
		return ""
	}
	return slug.Make(mls + "-" + line1 + "-" + city + "-" + state + "-" + zip)
}
