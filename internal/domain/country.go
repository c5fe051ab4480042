// Package domain defines the entity types shared across the ingestion
// pipeline and the HTTP API.
package domain

import "time"

// CountryCode identifies a supported country.
type CountryCode string

// Supported country codes.
const (
	CountryRW CountryCode = "RW"
	CountryKE CountryCode = "KE"
	CountryUG CountryCode = "UG"
	CountryTZ CountryCode = "TZ"
	CountryET CountryCode = "ET"
)

// IsValid reports whether the code is a recognized country.
func (c CountryCode) IsValid() bool {
	switch c {
	case CountryRW, CountryKE, CountryUG, CountryTZ, CountryET:
		return true
	default:
		return false
	}
}

// ContactInfo holds contact details for an entity.
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`
}

// CountryProfile describes a country and the coverage of its data set.
type CountryProfile struct {
	Code        CountryCode `json:"code"`
	Name        string      `json:"name"`
	Flag        string      `json:"flag"`
	Currency    string      `json:"currency"`
	Regions     []string    `json:"regions"`
	LastUpdated time.Time   `json:"last_updated"`
	DataSource  string      `json:"data_source"`
	// Completeness is round(availableDocuments / expectedDocuments * 100).
	// Not clamped above 100 when more documents than expected are supplied.
	Completeness int    `json:"completeness"`
	Description  string `json:"description,omitempty"`
	Population   int64  `json:"population,omitempty"`
	GDP          int64  `json:"gdp,omitempty"`
}

// CountryData is the aggregate produced by one processor run.
// It is immutable once returned; a new load supersedes it wholesale.
type CountryData struct {
	Profile        CountryProfile          `json:"profile"`
	Suppliers      []CountrySupplier       `json:"suppliers"`
	Infrastructure []CountryInfrastructure `json:"infrastructure"`
	Pricing        []CountryPricing        `json:"pricing"`
	Government     []GovernmentContact     `json:"government"`
	LastProcessed  time.Time               `json:"last_processed"`
}

// CountryStats summarizes a country aggregate for dashboard consumers.
type CountryStats struct {
	TotalSuppliers           int       `json:"total_suppliers"`
	VerifiedSuppliers        int       `json:"verified_suppliers"`
	GovernmentAgencies       int       `json:"government_agencies"`
	InfrastructureFacilities int       `json:"infrastructure_facilities"`
	PricingItems             int       `json:"pricing_items"`
	LastUpdated              time.Time `json:"last_updated"`
	DataCompleteness         int       `json:"data_completeness"`
}
