// Package listing implements the row-level transformation pipeline that
// reshapes scraped real-estate CSV rows into the normalized listing schema
// loaded into the warehouse and the search index.
package listing

// RenameMap maps raw scraper column names to their canonical names.
// Columns not present here pass through under their original name.
var RenameMap = map[string]string{
	"propertyStatus":    "status",
	"numberOfBeds":      "bedrooms",
	"numberOfBaths":     "bathrooms",
	"sqft":              "square_feet",
	"addr1":             "address_line_1",
	"addr2":             "address_line_2",
	"streetNumber":      "street_number",
	"streetName":        "street_name",
	"streetType":        "street_type",
	"preDirection":      "pre_direction",
	"unitType":          "unit_type",
	"unitNumber":        "unit_number",
	"zipcode":           "zip_code",
	"propertyType":      "property_type",
	"yearBuilt":         "year_built",
	"presentedBy":       "presented_by",
	"brokeredBy":        "brokered_by",
	"realtorMobile":     "presented_by_mobile",
	"sourcePropertyId":  "mls",
	"openHouse":         "open_house",
	"compassPropertyId": "compass_property_id",
	"pageLink":          "page_link",
}

// StatusMapping standardizes the handful of scraper status labels that
// differ from the canonical vocabulary. Unmapped values pass through.
var StatusMapping = map[string]string{
	"Active Under Contract": "Pending",
	"New":                   "Active",
	"Closed":                "Sold",
}

// Columns is the fixed output column set, in order. Both sinks see exactly
// these 42 columns; the warehouse upper-cases them at load time.
var Columns = []string{
	"id",
	"mls",
	"compass_property_id",
	"status",
	"price",
	"bedrooms",
	"bathrooms",
	"square_feet",
	"property_type",
	"year_built",
	"address_line_1",
	"address_line_2",
	"street_number",
	"street_name",
	"street_type",
	"pre_direction",
	"unit_type",
	"unit_number",
	"city",
	"state",
	"zip_code",
	"latitude",
	"longitude",
	"full_address",
	"presented_by",
	"presented_by_first_name",
	"presented_by_middle_name",
	"presented_by_last_name",
	"presented_by_mobile",
	"brokered_by",
	"listing_office_id",
	"listing_agent_id",
	"email",
	"email_1",
	"email_2",
	"list_date",
	"pending_date",
	"scraped_date",
	"oh_startTime",
	"oh_company",
	"oh_contactName",
	"page_link",
}

// CanonicalName returns the canonical name for a raw column. Renaming an
// already-canonical name is a no-op, so the mapping is idempotent.
func CanonicalName(raw string) string {
	if canonical, ok := RenameMap[raw]; ok {
		return canonical
	}
	return raw
}
