package funeralhomes

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Record is one funeral home as returned by the API. Nullable columns are
// pointers. Sources and SourceIDs are provenance data passed through verbatim.
type Record struct {
	InternalID  int64           `json:"internal_id"`
	ClusterID   *int64          `json:"cluster_id"`
	ClusterSize *int            `json:"cluster_size"`
	Name        *string         `json:"name"`
	Street      *string         `json:"street"`
	City        *string         `json:"city"`
	Region      *string         `json:"region"`
	PostalCode  *string         `json:"postal_code"`
	Country     *string         `json:"country"`
	Phone       *string         `json:"phone"`
	Website     *string         `json:"website"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Sources     json.RawMessage `json:"sources,omitempty"`
	SourceIDs   json.RawMessage `json:"source_ids,omitempty"`
}

// Field names a filterable attribute. The value doubles as the query key.
type Field string

const (
	FieldName       Field = "name"
	FieldCity       Field = "city"
	FieldRegion     Field = "region"
	FieldPostalCode Field = "postal_code"
	FieldCountry    Field = "country"
	FieldPhone      Field = "phone"
	FieldWebsite    Field = "website"
)

// Fields lists every filterable attribute in query-string order.
var Fields = []Field{
	FieldName,
	FieldCity,
	FieldRegion,
	FieldPostalCode,
	FieldCountry,
	FieldPhone,
	FieldWebsite,
}

// FormFields are the attributes offered by the interactive search forms.
var FormFields = []Field{
	FieldName,
	FieldCity,
	FieldRegion,
	FieldPostalCode,
}

// Label returns a human readable name for the field.
func (f Field) Label() string {
	switch f {
	case FieldPostalCode:
		return "Postal code"
	case "":
		return ""
	default:
		s := string(f)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// Filters holds free-text constraints. Blank values mean "unset".
type Filters struct {
	Name       string
	City       string
	Region     string
	PostalCode string
	Country    string
	Phone      string
	Website    string
}

// Get returns the raw value stored for field.
func (f Filters) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldCity:
		return f.City
	case FieldRegion:
		return f.Region
	case FieldPostalCode:
		return f.PostalCode
	case FieldCountry:
		return f.Country
	case FieldPhone:
		return f.Phone
	case FieldWebsite:
		return f.Website
	}
	return ""
}

// Set stores value for field. It returns false for an unknown field.
func (f *Filters) Set(field Field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldCity:
		f.City = value
	case FieldRegion:
		f.Region = value
	case FieldPostalCode:
		f.PostalCode = value
	case FieldCountry:
		f.Country = value
	case FieldPhone:
		f.Phone = value
	case FieldWebsite:
		f.Website = value
	default:
		return false
	}
	return true
}

// Active reports whether at least one filter has a non-blank value.
func (f Filters) Active() bool {
	for _, field := range Fields {
		if strings.TrimSpace(f.Get(field)) != "" {
			return true
		}
	}
	return false
}

// FiltersFromQuery reads the filter keys out of a parsed query string.
// Only the given fields are read; pass Fields to read all of them.
func FiltersFromQuery(q url.Values, fields ...Field) Filters {
	var f Filters
	for _, field := range fields {
		f.Set(field, q.Get(string(field)))
	}
	return f
}

// Sort keys and directions accepted by the API.
const (
	SortByInternalID  = "internal_id"
	SortByName        = "name"
	SortByCity        = "city"
	SortByRegion      = "region"
	SortByPostalCode  = "postal_code"
	SortByClusterSize = "cluster_size"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListOptions carries the pagination and sort directives of a list request.
type ListOptions struct {
	Limit   int
	Offset  int
	SortBy  string
	SortDir string
}
