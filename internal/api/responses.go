package api

import (
	"github.com/qivook/qivook-engine/internal/domain"
)

// SuppliersListResponse represents a list of suppliers with metadata.
type SuppliersListResponse struct {
	Suppliers []domain.CountrySupplier `json:"suppliers"`
	Total     int                      `json:"total"`
}

// InfrastructureListResponse represents a list of infrastructure records.
type InfrastructureListResponse struct {
	Infrastructure []domain.CountryInfrastructure `json:"infrastructure"`
	Total          int                            `json:"total"`
}

// PricingListResponse represents a list of pricing records.
type PricingListResponse struct {
	Pricing []domain.CountryPricing `json:"pricing"`
	Total   int                     `json:"total"`
}

// GovernmentListResponse represents a list of government contacts.
type GovernmentListResponse struct {
	Contacts []domain.GovernmentContact `json:"contacts"`
	Total    int                        `json:"total"`
}

// ReloadResponse confirms a forced country data reload.
type ReloadResponse struct {
	Message      string             `json:"message"`
	Country      domain.CountryCode `json:"country"`
	Completeness int                `json:"completeness"`
}
