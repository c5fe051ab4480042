// Package extract turns raw document text into typed entity records. Each
// extractor is a pure function scoped to one pattern: absence of the
// pattern yields an empty result, never an error.
//
// Routing from a document title to an extractor is table-driven: the first
// route whose title fragment appears in the document title wins, matching
// the source data's one-pattern-per-document layout.
package extract

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/qivook/qivook-engine/internal/domain"
)

// SupplierFunc extracts supplier records from normalized text.
type SupplierFunc func(country domain.CountryCode, text string, now time.Time) []domain.CountrySupplier

// InfrastructureFunc extracts infrastructure records from normalized text.
type InfrastructureFunc func(country domain.CountryCode, text string, now time.Time) []domain.CountryInfrastructure

// PricingFunc extracts pricing records from normalized text.
type PricingFunc func(country domain.CountryCode, text string, now time.Time) []domain.CountryPricing

// GovernmentFunc extracts government contact records from normalized text.
type GovernmentFunc func(country domain.CountryCode, text string, now time.Time) []domain.GovernmentContact

type supplierRoute struct {
	titleFragment string
	fn            SupplierFunc
}

type infrastructureRoute struct {
	titleFragment string
	fn            InfrastructureFunc
}

type pricingRoute struct {
	titleFragment string
	fn            PricingFunc
}

type governmentRoute struct {
	titleFragment string
	fn            GovernmentFunc
}

var supplierRoutes = []supplierRoute{
	{"Laboratory and Quality Testing", LaboratorySuppliers},
	{"Food Suppliers", FoodSuppliers},
	{"Storage and Milling", StorageSuppliers},
	{"Transporter", TransportSuppliers},
}

var infrastructureRoutes = []infrastructureRoute{
	{"Airport", AirportInfrastructure},
	{"Storage", StorageInfrastructure},
	{"Road", RoadInfrastructure},
}

var pricingRoutes = []pricingRoute{
	{"Fuel", FuelPricing},
	{"Labor", LaborPricing},
}

var governmentRoutes = []governmentRoute{
	{"Government Contact List", MinistryContacts},
	{"Humanitarian Agency", HumanitarianAgencies},
}

// Suppliers extracts supplier records from one classified document.
func Suppliers(country domain.CountryCode, doc domain.RawDocument, now time.Time) []domain.CountrySupplier {
	text := normalizeText(doc.TextContent)
	for _, route := range supplierRoutes {
		if strings.Contains(doc.Title, route.titleFragment) {
			return route.fn(country, text, now)
		}
	}
	return nil
}

// Infrastructure extracts infrastructure records from one classified document.
func Infrastructure(country domain.CountryCode, doc domain.RawDocument, now time.Time) []domain.CountryInfrastructure {
	text := normalizeText(doc.TextContent)
	for _, route := range infrastructureRoutes {
		if strings.Contains(doc.Title, route.titleFragment) {
			return route.fn(country, text, now)
		}
	}
	return nil
}

// Pricing extracts pricing records from one classified document.
func Pricing(country domain.CountryCode, doc domain.RawDocument, now time.Time) []domain.CountryPricing {
	text := normalizeText(doc.TextContent)
	for _, route := range pricingRoutes {
		if strings.Contains(doc.Title, route.titleFragment) {
			return route.fn(country, text, now)
		}
	}
	return nil
}

// Government extracts government contact records from one classified document.
func Government(country domain.CountryCode, doc domain.RawDocument, now time.Time) []domain.GovernmentContact {
	text := normalizeText(doc.TextContent)
	for _, route := range governmentRoutes {
		if strings.Contains(doc.Title, route.titleFragment) {
			return route.fn(country, text, now)
		}
	}
	return nil
}

// containsMarker reports whether a known marker string appears in the text.
func containsMarker(text, marker string) bool {
	return strings.Contains(text, marker)
}

// normalizeText NFC-normalizes scraped prose so regex scans and marker
// lookups are not defeated by decomposed unicode from the source site.
func normalizeText(text string) string {
	if norm.NFC.IsNormalString(text) {
		return text
	}
	return norm.NFC.String(text)
}
