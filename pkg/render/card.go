package render

import (
	"fmt"
	"strings"

	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
)

// UnnamedListing is shown for records without a usable name.
const UnnamedListing = "Unnamed listing"

// clean trims a nullable column; nil and blank both become "".
func clean(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// DisplayName returns the trimmed record name or UnnamedListing.
func DisplayName(r funeralhomes.Record) string {
	if name := clean(r.Name); name != "" {
		return name
	}
	return UnnamedListing
}

// Address is the two-line postal address of a card. Empty lines are absent.
type Address struct {
	Line1 string
	Line2 string
}

// Empty reports whether the card should omit the address block.
func (a Address) Empty() bool {
	return a.Line1 == "" && a.Line2 == ""
}

// BuildAddress derives the address lines: the street on line 1, the
// non-blank city, region and postal code joined by ", " on line 2.
func BuildAddress(r funeralhomes.Record) Address {
	var parts []string
	for _, p := range []*string{r.City, r.Region, r.PostalCode} {
		if s := clean(p); s != "" {
			parts = append(parts, s)
		}
	}
	return Address{
		Line1: clean(r.Street),
		Line2: strings.Join(parts, ", "),
	}
}

// NormalizeWebsite turns a stored website into a link target. Values without
// an explicit http:// or https:// scheme get https:// prepended.
func NormalizeWebsite(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

// Card holds the display values of one record.
type Card struct {
	ID      int64
	Name    string
	Chips   []string
	Cluster string
	Address Address
	Phone   string

	// Website is the label shown to the user, WebsiteHref the link target.
	Website     string
	WebsiteHref string
}

// HasContact reports whether the card has a phone or website section.
func (c Card) HasContact() bool {
	return c.Phone != "" || c.Website != ""
}

// NewCard derives the card for r.
func NewCard(r funeralhomes.Record) Card {
	c := Card{
		ID:      r.InternalID,
		Name:    DisplayName(r),
		Address: BuildAddress(r),
		Phone:   clean(r.Phone),
		Website: clean(r.Website),
	}
	c.WebsiteHref = NormalizeWebsite(c.Website)

	for _, chip := range []*string{r.Region, r.City, r.PostalCode} {
		if s := clean(chip); s != "" {
			c.Chips = append(c.Chips, s)
		}
	}
	if r.ClusterSize != nil && *r.ClusterSize != 0 {
		c.Cluster = fmt.Sprintf("Cluster %d", *r.ClusterSize)
	}
	return c
}

// Cards derives the cards for a page of records, preserving order.
func Cards(rows []funeralhomes.Record) []Card {
	cards := make([]Card, len(rows))
	for i, r := range rows {
		cards[i] = NewCard(r)
	}
	return cards
}
