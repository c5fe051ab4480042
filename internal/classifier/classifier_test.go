//nolint:testpackage // Testing internal classifier requires same package access
package classifier

import (
	"testing"

	"github.com/qivook/qivook-engine/internal/domain"
	"github.com/qivook/qivook-engine/internal/logging"
)

func TestCategories_MultiMembership(t *testing.T) {
	t.Helper()

	c := New(logging.NewNop())
	doc := domain.RawDocument{Title: "Storage and Milling Facilities Report"}

	if !c.IsSupplierFile(doc) {
		t.Error("expected supplier membership for storage report")
	}
	if !c.IsInfrastructureFile(doc) {
		t.Error("expected infrastructure membership for storage report")
	}
	if c.IsPricingFile(doc) {
		t.Error("did not expect pricing membership")
	}
	if c.IsGovernmentFile(doc) {
		t.Error("did not expect government membership")
	}
}

func TestCategories_MissingTitle(t *testing.T) {
	t.Helper()

	c := New(logging.NewNop())
	doc := domain.RawDocument{TextContent: "Fuel prices: Petrol 1450 Rwf 1.12 US$"}

	if cats := c.Categories(doc); len(cats) != 0 {
		t.Errorf("expected no categories for untitled document, got %v", cats)
	}
}

func TestCategories_CaseInsensitive(t *testing.T) {
	t.Helper()

	c := New(logging.NewNop())

	tests := []struct {
		name  string
		title string
		want  Category
	}{
		{"uppercase fuel", "FUEL Prices Q3", CategoryPricing},
		{"mixed case ministry", "Government Contact List - Ministry Directory", CategoryGovernment},
		{"transporter", "Registered Transporter Directory", CategorySupplier},
		{"railway", "Railway Assessment", CategoryInfrastructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domain.RawDocument{Title: tt.title}
			found := false
			for _, cat := range c.Categories(doc) {
				if cat == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("title %q: expected category %s, got %v", tt.title, tt.want, c.Categories(doc))
			}
		})
	}
}

func TestCategories_NoMatch(t *testing.T) {
	t.Helper()

	c := New(logging.NewNop())
	doc := domain.RawDocument{Title: "Annual Review of Telecommunications"}

	if cats := c.Categories(doc); len(cats) != 0 {
		t.Errorf("expected no categories, got %v", cats)
	}
}

func TestCategories_DispatchOrderStable(t *testing.T) {
	t.Helper()

	c := New(logging.NewNop())
	doc := domain.RawDocument{Title: "Government fuel storage supplier airport"}

	want := []Category{CategorySupplier, CategoryInfrastructure, CategoryPricing, CategoryGovernment}
	got := c.Categories(doc)
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
