package extract

import (
	"regexp"
	"strconv"
	"time"

	"github.com/qivook/qivook-engine/internal/domain"
)

// fuelPricePattern matches lines of the form
// "Petrol ... 1450 Rwf ... 1.12 US$" in fuel cost reports. Only the USD
// figure is retained; the local-currency capture anchors the match.
var fuelPricePattern = regexp.MustCompile(`(Petrol|Diesel|Paraffin|Jet A-1).*?(\d+)\s*Rwf.*?(\d+\.?\d*)\s*US\$`)

const (
	fuelUnit    = "per litre"
	laborMarker = "Daily General Worker"
	laborItem   = "Unskilled casual labour"
	laborRate   = 1.45 // USD per day
	laborUnit   = "per day"

	pricingSource = "logcluster.org"
)

// FuelPricing extracts one record per fuel price line. The source does not
// compute a real trend here; "stable" is a placeholder carried for every
// record. A match whose USD capture fails numeric parsing is skipped,
// consistent with the absence-yields-empty contract elsewhere.
func FuelPricing(country domain.CountryCode, text string, now time.Time) []domain.CountryPricing {
	var out []domain.CountryPricing
	for _, m := range fuelPricePattern.FindAllStringSubmatch(text, -1) {
		price, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		out = append(out, domain.CountryPricing{
			CountryCode: country,
			Category:    domain.PricingFuel,
			Item:        m[1],
			Price:       price,
			Currency:    "USD",
			Unit:        fuelUnit,
			LastUpdated: now,
			Source:      pricingSource,
			Trend:       domain.TrendStable,
		})
	}
	return out
}

// LaborPricing is presence-only: the "Daily General Worker" marker yields
// a single fixed-value record. This is a deliberate minimal rule, not a
// wage table parser.
func LaborPricing(country domain.CountryCode, text string, now time.Time) []domain.CountryPricing {
	if !containsMarker(text, laborMarker) {
		return nil
	}
	return []domain.CountryPricing{{
		CountryCode: country,
		Category:    domain.PricingLabor,
		Item:        laborItem,
		Price:       laborRate,
		Currency:    "USD",
		Unit:        laborUnit,
		LastUpdated: now,
		Source:      pricingSource,
		Trend:       domain.TrendStable,
	}}
}
