package loader

import (
	"context"
	"strings"

	"github.com/qivook/qivook-engine/internal/domain"
)

// Typed projections over the cached aggregate. All of them go through
// Get, so a stale or missing cache entry triggers at most one reload.

// Suppliers returns the supplier list for a country.
func (l *Loader) Suppliers(ctx context.Context, country domain.CountryCode) []domain.CountrySupplier {
	return l.Get(ctx, country, false).Suppliers
}

// Infrastructure returns the infrastructure list for a country.
func (l *Loader) Infrastructure(ctx context.Context, country domain.CountryCode) []domain.CountryInfrastructure {
	return l.Get(ctx, country, false).Infrastructure
}

// Pricing returns the pricing list for a country.
func (l *Loader) Pricing(ctx context.Context, country domain.CountryCode) []domain.CountryPricing {
	return l.Get(ctx, country, false).Pricing
}

// Government returns the government contact list for a country.
func (l *Loader) Government(ctx context.Context, country domain.CountryCode) []domain.GovernmentContact {
	return l.Get(ctx, country, false).Government
}

// Profile returns the country profile.
func (l *Loader) Profile(ctx context.Context, country domain.CountryCode) domain.CountryProfile {
	return l.Get(ctx, country, false).Profile
}

// SearchSuppliers filters the cached supplier list by a case-insensitive
// substring match against name, services, and materials, with an optional
// exact category filter. No I/O beyond the underlying Get.
func (l *Loader) SearchSuppliers(ctx context.Context, country domain.CountryCode, query string, category domain.SupplierCategory) []domain.CountrySupplier {
	q := strings.ToLower(query)

	matches := []domain.CountrySupplier{}
	for _, s := range l.Suppliers(ctx, country) {
		if category != "" && s.Category != category {
			continue
		}
		if supplierMatches(s, q) {
			matches = append(matches, s)
		}
	}
	return matches
}

func supplierMatches(s domain.CountrySupplier, q string) bool {
	if strings.Contains(strings.ToLower(s.Name), q) {
		return true
	}
	for _, svc := range s.Services {
		if strings.Contains(strings.ToLower(svc), q) {
			return true
		}
	}
	for _, m := range s.Materials {
		if strings.Contains(strings.ToLower(m), q) {
			return true
		}
	}
	return false
}

// SuppliersByCategory returns suppliers with exactly the given category.
func (l *Loader) SuppliersByCategory(ctx context.Context, country domain.CountryCode, category domain.SupplierCategory) []domain.CountrySupplier {
	matches := []domain.CountrySupplier{}
	for _, s := range l.Suppliers(ctx, country) {
		if s.Category == category {
			matches = append(matches, s)
		}
	}
	return matches
}

// VerifiedSuppliers returns only verified suppliers.
func (l *Loader) VerifiedSuppliers(ctx context.Context, country domain.CountryCode) []domain.CountrySupplier {
	matches := []domain.CountrySupplier{}
	for _, s := range l.Suppliers(ctx, country) {
		if s.Verified {
			matches = append(matches, s)
		}
	}
	return matches
}

// Stats reduces the cached aggregate to headline counts.
func (l *Loader) Stats(ctx context.Context, country domain.CountryCode) domain.CountryStats {
	data := l.Get(ctx, country, false)

	verified := 0
	for _, s := range data.Suppliers {
		if s.Verified {
			verified++
		}
	}

	return domain.CountryStats{
		TotalSuppliers:           len(data.Suppliers),
		VerifiedSuppliers:        verified,
		GovernmentAgencies:       len(data.Government),
		InfrastructureFacilities: len(data.Infrastructure),
		PricingItems:             len(data.Pricing),
		LastUpdated:              data.LastProcessed,
		DataCompleteness:         data.Profile.Completeness,
	}
}
