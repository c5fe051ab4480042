package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/qivook/qivook-engine/internal/domain"
)

// ministryPattern walks flat "Ministry of X / Name / Title / Email" line
// groups in the government contact list. Prose that reflows these line
// groups will defeat it; the fragility is confined to this one pattern.
var ministryPattern = regexp.MustCompile(`Ministry of ([^\n]+)\n\s*([^\n]+)\n\s*([^\n]+)\n\s*([^\n]+)`)

var slugSpaces = regexp.MustCompile(`\s+`)

// MinistryContacts extracts one contact per ministry line group.
func MinistryContacts(country domain.CountryCode, text string, now time.Time) []domain.GovernmentContact {
	var out []domain.GovernmentContact
	for _, m := range ministryPattern.FindAllStringSubmatch(text, -1) {
		ministry := strings.TrimSpace(m[1])
		out = append(out, domain.GovernmentContact{
			ID:          ministrySlug(country, ministry),
			CountryCode: country,
			Ministry:    "Ministry of " + ministry,
			Name:        strings.TrimSpace(m[2]),
			Title:       strings.TrimSpace(m[3]),
			Contact: domain.ContactInfo{
				Email: strings.TrimSpace(m[4]),
			},
			Services:     []string{"Government Services", "Regulatory Affairs"},
			Jurisdiction: "National",
			LastUpdated:  now,
		})
	}
	return out
}

func ministrySlug(country domain.CountryCode, ministry string) string {
	slug := slugSpaces.ReplaceAllString(strings.ToLower(ministry), "-")
	return fmt.Sprintf("%s-gov-%s", country, slug)
}
