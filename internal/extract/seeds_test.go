//nolint:testpackage // Testing internal extractors requires same package access
package extract

import (
	"testing"

	"github.com/qivook/qivook-engine/internal/domain"
)

func TestLaboratorySuppliers_BothMarkers(t *testing.T) {
	t.Helper()

	text := "The Rwanda Standards Board operates testing labs. " +
		"The Rwanda Food and Drug Authority certifies pharmaceuticals."

	got := LaboratorySuppliers(domain.CountryRW, text, testNow)
	if len(got) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(got))
	}

	if got[0].ID != "RW-lab-rsb" {
		t.Errorf("expected RW-lab-rsb, got %s", got[0].ID)
	}
	if got[0].Name != "Rwanda Standards Board (RSB)" {
		t.Errorf("unexpected name %q", got[0].Name)
	}
	if got[0].CountryCode != domain.CountryRW {
		t.Errorf("expected RW, got %s", got[0].CountryCode)
	}
	if !got[0].Verified {
		t.Error("expected verified supplier")
	}
	if got[1].ID != "RW-lab-fda" {
		t.Errorf("expected RW-lab-fda, got %s", got[1].ID)
	}
}

func TestLaboratorySuppliers_NoMarker(t *testing.T) {
	t.Helper()

	if got := LaboratorySuppliers(domain.CountryRW, "nothing relevant", testNow); len(got) != 0 {
		t.Errorf("expected no suppliers, got %d", len(got))
	}
}

func TestFoodSuppliers_Marker(t *testing.T) {
	t.Helper()

	got := FoodSuppliers(domain.CountryRW, "Africa Improved Foods runs a fortified food plant", testNow)
	if len(got) != 1 {
		t.Fatalf("expected 1 supplier, got %d", len(got))
	}
	if got[0].Category != domain.SupplierFood {
		t.Errorf("expected food category, got %s", got[0].Category)
	}
}

func TestAirportInfrastructure_Marker(t *testing.T) {
	t.Helper()

	got := AirportInfrastructure(domain.CountryRW, "Cargo moves through Kigali International Airport daily", testNow)
	if len(got) != 1 {
		t.Fatalf("expected 1 facility, got %d", len(got))
	}
	if got[0].Type != domain.InfraAirport {
		t.Errorf("expected airport type, got %s", got[0].Type)
	}
	if got[0].Status != domain.StatusOperational {
		t.Errorf("expected operational, got %s", got[0].Status)
	}
	if !got[0].LastUpdated.Equal(testNow) {
		t.Errorf("expected lastUpdated %v, got %v", testNow, got[0].LastUpdated)
	}
}

func TestStorageAndTransportExtractors_EmptySeeds(t *testing.T) {
	t.Helper()

	if got := StorageSuppliers(domain.CountryRW, "any text", testNow); len(got) != 0 {
		t.Errorf("expected no storage suppliers, got %d", len(got))
	}
	if got := TransportSuppliers(domain.CountryRW, "any text", testNow); len(got) != 0 {
		t.Errorf("expected no transport suppliers, got %d", len(got))
	}
	if got := RoadInfrastructure(domain.CountryRW, "any text", testNow); len(got) != 0 {
		t.Errorf("expected no road records, got %d", len(got))
	}
}

func TestHumanitarianAgencies_Marker(t *testing.T) {
	t.Helper()

	got := HumanitarianAgencies(domain.CountryRW, "Contact the World Food Programme country office", testNow)
	if len(got) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(got))
	}
	if got[0].ID != "RW-gov-wfp" {
		t.Errorf("expected RW-gov-wfp, got %s", got[0].ID)
	}
}
