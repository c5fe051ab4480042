package domain

import "time"

// SupplierCategory classifies a supplier's line of business.
type SupplierCategory string

// Supplier categories.
const (
	SupplierLaboratory   SupplierCategory = "laboratory"
	SupplierStorage      SupplierCategory = "storage"
	SupplierFood         SupplierCategory = "food"
	SupplierTransport    SupplierCategory = "transport"
	SupplierGovernment   SupplierCategory = "government"
	SupplierConstruction SupplierCategory = "construction"
	SupplierAgriculture  SupplierCategory = "agriculture"
)

// DataSource records the provenance of an extracted record.
type DataSource string

// Data sources.
const (
	SourceUserContributed DataSource = "user_contributed"
	SourceLogCluster      DataSource = "logcluster"
	SourceVerifiedPartner DataSource = "verified_partner"
)

// CountrySupplier is a supplier record extracted for one country.
// Two suppliers with the same (Name, Location) pair are duplicates;
// only the first occurrence survives aggregation.
type CountrySupplier struct {
	ID              string           `json:"id"`
	CountryCode     CountryCode      `json:"country_code"`
	Name            string           `json:"name"`
	Category        SupplierCategory `json:"category"`
	Location        string           `json:"location"`
	Region          string           `json:"region"`
	Contact         ContactInfo      `json:"contact"`
	Services        []string         `json:"services"`
	Materials       []string         `json:"materials"`
	Certifications  []string         `json:"certifications"`
	Verified        bool             `json:"verified"`
	Rating          float64          `json:"rating,omitempty"`
	DataSource      DataSource       `json:"data_source"`
	Description     string           `json:"description,omitempty"`
	EstablishedYear int              `json:"established_year,omitempty"`
	EmployeeCount   string           `json:"employee_count,omitempty"`
}

// InfrastructureType classifies a piece of logistics infrastructure.
type InfrastructureType string

// Infrastructure types.
const (
	InfraAirport   InfrastructureType = "airport"
	InfraStorage   InfrastructureType = "storage"
	InfraMilling   InfrastructureType = "milling"
	InfraPort      InfrastructureType = "port"
	InfraRoad      InfrastructureType = "road"
	InfraRail      InfrastructureType = "rail"
	InfraWarehouse InfrastructureType = "warehouse"
)

// InfrastructureStatus describes operational state.
type InfrastructureStatus string

// Infrastructure statuses.
const (
	StatusOperational       InfrastructureStatus = "operational"
	StatusUnderConstruction InfrastructureStatus = "under_construction"
	StatusMaintenance       InfrastructureStatus = "maintenance"
	StatusClosed            InfrastructureStatus = "closed"
)

// CountryInfrastructure is an infrastructure facility record.
type CountryInfrastructure struct {
	ID             string               `json:"id"`
	CountryCode    CountryCode          `json:"country_code"`
	Type           InfrastructureType   `json:"type"`
	Name           string               `json:"name"`
	Location       string               `json:"location"`
	Coordinates    []float64            `json:"coordinates,omitempty"` // [lat, lng]
	Capacity       string               `json:"capacity"`
	Services       []string             `json:"services"`
	OperatingHours string               `json:"operating_hours,omitempty"`
	Contact        ContactInfo          `json:"contact"`
	SeasonalNotes  string               `json:"seasonal_notes,omitempty"`
	Status         InfrastructureStatus `json:"status"`
	LastUpdated    time.Time            `json:"last_updated"`
}

// PricingCategory classifies a pricing record.
type PricingCategory string

// Pricing categories.
const (
	PricingFuel      PricingCategory = "fuel"
	PricingLabor     PricingCategory = "labor"
	PricingTransport PricingCategory = "transport"
	PricingStorage   PricingCategory = "storage"
	PricingMaterials PricingCategory = "materials"
)

// PriceTrend indicates direction of a pricing series.
type PriceTrend string

// Price trends.
const (
	TrendUp     PriceTrend = "up"
	TrendDown   PriceTrend = "down"
	TrendStable PriceTrend = "stable"
)

// CountryPricing is one observed price point. Pricing records carry no
// unique ID; the (country, category, item, region) tuple identifies them
// for display. Duplicates across documents are kept deliberately so every
// source remains visible.
type CountryPricing struct {
	CountryCode   CountryCode     `json:"country_code"`
	Category      PricingCategory `json:"category"`
	Item          string          `json:"item"`
	Price         float64         `json:"price"`
	Currency      string          `json:"currency"`
	Unit          string          `json:"unit"`
	LastUpdated   time.Time       `json:"last_updated"`
	Source        string          `json:"source"`
	Region        string          `json:"region,omitempty"`
	Trend         PriceTrend      `json:"trend,omitempty"`
	PreviousPrice float64         `json:"previous_price,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// GovernmentContact is a ministry or agency contact record.
type GovernmentContact struct {
	ID           string      `json:"id"`
	CountryCode  CountryCode `json:"country_code"`
	Ministry     string      `json:"ministry"`
	Department   string      `json:"department,omitempty"`
	Name         string      `json:"name"`
	Title        string      `json:"title"`
	Contact      ContactInfo `json:"contact"`
	Services     []string    `json:"services"`
	Jurisdiction string      `json:"jurisdiction,omitempty"`
	LastUpdated  time.Time   `json:"last_updated"`
}
