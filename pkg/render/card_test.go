package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
)

func s(v string) *string { return &v }

func TestBuildAddress(t *testing.T) {
	tests := []struct {
		name string
		rec  funeralhomes.Record
		want Address
	}{
		{
			name: "street city region",
			rec:  funeralhomes.Record{Street: s("12 Oak St"), City: s("Denver"), Region: s("CO")},
			want: Address{Line1: "12 Oak St", Line2: "Denver, CO"},
		},
		{
			name: "all null",
			rec:  funeralhomes.Record{},
			want: Address{},
		},
		{
			name: "blank values count as absent",
			rec:  funeralhomes.Record{Street: s("  "), City: s(""), Region: s(" "), PostalCode: s("80202")},
			want: Address{Line2: "80202"},
		},
		{
			name: "street only",
			rec:  funeralhomes.Record{Street: s(" 1 Main St ")},
			want: Address{Line1: "1 Main St"},
		},
		{
			name: "full line two",
			rec:  funeralhomes.Record{City: s("Austin"), Region: s("TX"), PostalCode: s("73301")},
			want: Address{Line2: "Austin, TX, 73301"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildAddress(tt.rec)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("BuildAddress (-want +got):\n%s", diff)
			}
		})
	}

	if !BuildAddress(funeralhomes.Record{}).Empty() {
		t.Fatal("address with no lines should be empty")
	}
}

func TestNormalizeWebsite(t *testing.T) {
	tests := map[string]string{
		"example.org":         "https://example.org",
		"http://example.org":  "http://example.org",
		"https://example.org": "https://example.org",
		"  www.example.org  ": "https://www.example.org",
		"":                    "",
		"   ":                 "",
		"HTTP://EXAMPLE.ORG":  "https://HTTP://EXAMPLE.ORG",
		"ftp://files.example": "https://ftp://files.example",
	}
	for in, want := range tests {
		if got := NormalizeWebsite(in); got != want {
			t.Errorf("NormalizeWebsite(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(funeralhomes.Record{Name: s("  Oak Chapel ")}); got != "Oak Chapel" {
		t.Fatalf("DisplayName = %q", got)
	}
	for _, name := range []*string{nil, s(""), s("   ")} {
		if got := DisplayName(funeralhomes.Record{Name: name}); got != UnnamedListing {
			t.Fatalf("DisplayName(%v) = %q, want %q", name, got, UnnamedListing)
		}
	}
}

func TestNewCard(t *testing.T) {
	size := 3
	rec := funeralhomes.Record{
		InternalID:  42,
		ClusterSize: &size,
		Name:        s("Oak Chapel"),
		Street:      s("12 Oak St"),
		City:        s("Denver"),
		Region:      s("CO"),
		PostalCode:  s("80202"),
		Phone:       s(" "),
		Website:     s("oakchapel.example"),
	}

	want := Card{
		ID:          42,
		Name:        "Oak Chapel",
		Chips:       []string{"CO", "Denver", "80202"},
		Cluster:     "Cluster 3",
		Address:     Address{Line1: "12 Oak St", Line2: "Denver, CO, 80202"},
		Website:     "oakchapel.example",
		WebsiteHref: "https://oakchapel.example",
	}
	got := NewCard(rec)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("NewCard (-want +got):\n%s", diff)
	}
	if !got.HasContact() {
		t.Fatal("card with a website has a contact section")
	}
}

func TestNewCardWithoutExtras(t *testing.T) {
	zero := 0
	got := NewCard(funeralhomes.Record{InternalID: 1, ClusterSize: &zero})
	if got.Chips != nil || got.Cluster != "" {
		t.Fatalf("expected no chips, got %v %q", got.Chips, got.Cluster)
	}
	if got.HasContact() || !got.Address.Empty() {
		t.Fatalf("expected bare card, got %+v", got)
	}
	if got.Name != UnnamedListing {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestCardsPreservesOrder(t *testing.T) {
	cards := Cards([]funeralhomes.Record{{InternalID: 3}, {InternalID: 1}, {InternalID: 2}})
	var ids []int64
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]int64{3, 1, 2}, ids); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
}
