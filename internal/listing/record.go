package listing

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Row is one cleaned CSV row keyed by canonical column name. Cells are
// sentinel-scrubbed strings; a missing column reads as "".
type Row map[string]string

// Listing is one normalized output row. Every field is a nullable pgtype
// value, so "absent" has exactly one representation from here on.
// Field order follows Columns.
type Listing struct {
	ID                    pgtype.Text
	MLS                   pgtype.Text
	CompassPropertyID     pgtype.Text
	Status                pgtype.Text
	Price                 pgtype.Numeric
	Bedrooms              pgtype.Int8
	Bathrooms             pgtype.Numeric
	SquareFeet            pgtype.Int8
	PropertyType          pgtype.Text
	YearBuilt             pgtype.Int8
	AddressLine1          pgtype.Text
	AddressLine2          pgtype.Text
	StreetNumber          pgtype.Text
	StreetName            pgtype.Text
	StreetType            pgtype.Text
	PreDirection          pgtype.Text
	UnitType              pgtype.Text
	UnitNumber            pgtype.Text
	City                  pgtype.Text
	State                 pgtype.Text
	ZipCode               pgtype.Text
	Latitude              pgtype.Numeric
	Longitude             pgtype.Numeric
	FullAddress           pgtype.Text
	PresentedBy           pgtype.Text
	PresentedByFirstName  pgtype.Text
	PresentedByMiddleName pgtype.Text
	PresentedByLastName   pgtype.Text
	PresentedByMobile     pgtype.Text
	BrokeredBy            pgtype.Text
	ListingOfficeID       pgtype.Text
	ListingAgentID        pgtype.Text
	Email                 pgtype.Text
	Email1                pgtype.Text
	Email2                pgtype.Text
	ListDate              pgtype.Date
	PendingDate           pgtype.Date
	ScrapedDate           pgtype.Date
	OpenHouseStartTime    pgtype.Int8
	OpenHouseCompany      pgtype.Text
	OpenHouseContactName  pgtype.Text
	PageLink              pgtype.Text
}

// FromRow builds a Listing from one canonical row: runs the value parsers,
// synthesizes the full address and listing id, and converts each cell to
// its typed nullable field. Parse failures degrade to NULL fields; this
// never errors, so one bad cell cannot abort the row or the run.
func FromRow(row Row) Listing {
	first, middle, last := SplitName(row["presented_by"])
	email1, email2 := SplitEmail(row["email"])
	openHouse := ParseOpenHouse(row["open_house"])

	l := Listing{
		ID: ToPgText(ListingID(
			row["mls"], row["address_line_1"], row["city"], row["state"], row["zip_code"],
		)),
		MLS:               ToPgText(row["mls"]),
		CompassPropertyID: ToPgText(row["compass_property_id"]),
		Status:            ToPgText(NormalizeStatus(row["status"])),
		Price:             ToPgNumeric(row["price"]),
		Bedrooms:          ToPgInt8(row["bedrooms"]),
		Bathrooms:         ToPgNumeric(row["bathrooms"]),
		SquareFeet:        ToPgInt8(row["square_feet"]),
		PropertyType:      ToPgText(row["property_type"]),
		YearBuilt:         ToPgInt8(row["year_built"]),
		AddressLine1:      ToPgText(row["address_line_1"]),
		AddressLine2:      ToPgText(row["address_line_2"]),
		StreetNumber:      ToPgText(row["street_number"]),
		StreetName:        ToPgText(row["street_name"]),
		StreetType:        ToPgText(row["street_type"]),
		PreDirection:      ToPgText(row["pre_direction"]),
		UnitType:          ToPgText(row["unit_type"]),
		UnitNumber:        ToPgText(row["unit_number"]),
		City:              ToPgText(row["city"]),
		State:             ToPgText(row["state"]),
		ZipCode:           ToPgText(row["zip_code"]),
		Latitude:          ToPgNumeric(row["latitude"]),
		Longitude:         ToPgNumeric(row["longitude"]),
		FullAddress: ToPgText(FullAddress(
			row["address_line_1"], row["address_line_2"], row["city"], row["state"], row["zip_code"],
		)),
		PresentedBy:           ToPgText(row["presented_by"]),
		PresentedByFirstName:  ToPgText(first),
		PresentedByMiddleName: ToPgText(middle),
		PresentedByLastName:   ToPgText(last),
		// The mobile column keeps empty strings rather than NULL; the
		// scraper emits "" for unlisted numbers and downstream expects it.
		PresentedByMobile: pgtype.Text{String: TruncatePhone(row["presented_by_mobile"]), Valid: true},
		BrokeredBy:        ToPgText(row["brokered_by"]),
		ListingOfficeID:   ToPgText(row["listing_office_id"]),
		ListingAgentID:    ToPgText(row["listing_agent_id"]),
		Email:             ToPgText(row["email"]),
		Email1:            ToPgText(email1),
		Email2:            ToPgText(email2),
		ListDate:          ToPgDate(row["list_date"]),
		PendingDate:       ToPgDate(row["pending_date"]),
		ScrapedDate:       ToPgDate(row["scraped_date"]),
		PageLink:          ToPgText(row["page_link"]),
	}

	if openHouse.Valid {
		if openHouse.StartTimeMillis != nil {
			l.OpenHouseStartTime = pgtype.Int8{Int64: *openHouse.StartTimeMillis, Valid: true}
		}
		l.OpenHouseCompany = ToPgText(openHouse.Company)
		l.OpenHouseContactName = ToPgText(openHouse.ContactName)
	}

	return l
}

// Values returns the listing's field values in Columns order, ready for a
// bulk warehouse insert.
func (l Listing) Values() []any {
	return []any{
		l.ID,
		l.MLS,
		l.CompassPropertyID,
		l.Status,
		l.Price,
		l.Bedrooms,
		l.Bathrooms,
		l.SquareFeet,
		l.PropertyType,
		l.YearBuilt,
		l.AddressLine1,
		l.AddressLine2,
		l.StreetNumber,
		l.StreetName,
		l.StreetType,
		l.PreDirection,
		l.UnitType,
		l.UnitNumber,
		l.City,
		l.State,
		l.ZipCode,
		l.Latitude,
		l.Longitude,
		l.FullAddress,
		l.PresentedBy,
		l.PresentedByFirstName,
		l.PresentedByMiddleName,
		l.PresentedByLastName,
		l.PresentedByMobile,
		l.BrokeredBy,
		l.ListingOfficeID,
		l.ListingAgentID,
		l.Email,
		l.Email1,
		l.Email2,
		l.ListDate,
		l.PendingDate,
		l.ScrapedDate,
		l.OpenHouseStartTime,
		l.OpenHouseCompany,
		l.OpenHouseContactName,
		l.PageLink,
	}
}

// IsEmpty reports whether every field of the listing is null. Synthesized
// fields don't count as content: a full address of bare separators and the
// always-valid mobile column are treated as empty.
func (l Listing) IsEmpty() bool {
	if l.PresentedByMobile.String != "" {
		return false
	}
	if l.FullAddress.Valid && strings.Trim(l.FullAddress.String, ", ") != "" {
		return false
	}

	for i, v := range l.Values() {
		switch Columns[i] {
		case "full_address", "presented_by_mobile":
			continue
		}
		switch f := v.(type) {
		case pgtype.Text:
			if f.Valid {
				return false
			}
		case pgtype.Numeric:
			if f.Valid {
				return false
			}
		case pgtype.Int8:
			if f.Valid {
				return false
			}
		case pgtype.Date:
			if f.Valid {
				return false
			}
		}
	}
	return true
}
