package processor

import "github.com/qivook/qivook-engine/internal/domain"

// countryInfo is the static per-country metadata table. Profile fields
// that are not present in the source documents come from here.
type countryInfo struct {
	name        string
	flag        string
	currency    string
	regions     []string
	description string
	population  int64
	gdp         int64
}

var countryTable = map[domain.CountryCode]countryInfo{
	domain.CountryRW: {
		name:     "Rwanda",
		flag:     "🇷🇼",
		currency: "RWF",
		regions:  []string{"Kigali", "Northern Province", "Southern Province", "Eastern Province", "Western Province"},
		description: "Landlocked country in East Africa known for its rapid economic development " +
			"and strong governance.",
		population: 13_100_000,
		gdp:        10_300_000_000,
	},
	domain.CountryKE: {
		name:        "Kenya",
		flag:        "🇰🇪",
		currency:    "KES",
		regions:     []string{"Nairobi", "Coast", "Rift Valley", "Western", "Nyanza", "Central", "Eastern", "North Eastern"},
		description: "Regional trade and logistics hub on the East African coast.",
		population:  54_000_000,
		gdp:         113_400_000_000,
	},
	domain.CountryUG: {
		name:        "Uganda",
		flag:        "🇺🇬",
		currency:    "UGX",
		regions:     []string{"Central", "Eastern", "Northern", "Western"},
		description: "Landlocked country connected to coastal trade via the Northern Corridor.",
		population:  47_100_000,
		gdp:         45_600_000_000,
	},
	domain.CountryTZ: {
		name:        "Tanzania",
		flag:        "🇹🇿",
		currency:    "TZS",
		regions:     []string{"Dar es Salaam", "Arusha", "Dodoma", "Mwanza", "Zanzibar"},
		description: "Coastal gateway serving the Central Corridor into the Great Lakes region.",
		population:  61_700_000,
		gdp:         75_700_000_000,
	},
	domain.CountryET: {
		name:        "Ethiopia",
		flag:        "🇪🇹",
		currency:    "ETB",
		regions:     []string{"Addis Ababa", "Oromia", "Amhara", "Tigray", "Somali"},
		description: "Highland country served by the Djibouti corridor for maritime trade.",
		population:  120_300_000,
		gdp:         111_300_000_000,
	},
}

// expectedDocuments is the fixed per-country count of source fragments a
// complete scrape produces. Completeness is measured against this, not
// against whatever happens to be on disk.
var expectedDocuments = map[domain.CountryCode]int{
	domain.CountryRW: 68,
	domain.CountryKE: 68,
	domain.CountryUG: 68,
	domain.CountryTZ: 68,
	domain.CountryET: 68,
}

// infoFor returns the metadata entry for a country, falling back to the
// Rwanda entry for codes without their own row yet.
func infoFor(country domain.CountryCode) countryInfo {
	if info, ok := countryTable[country]; ok {
		return info
	}
	return countryTable[domain.CountryRW]
}
