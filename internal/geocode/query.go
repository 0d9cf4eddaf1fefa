package geocode

import (
	"regexp"
	"strings"

	"github.com/pepiancookingclass/tasty/internal/domain"
)

// zonePattern recognizes the Guatemalan "zona N" token inside a street line,
// e.g. "5a avenida 3-10 zona 1". The English spelling is accepted too since
// customers occasionally type it.
var zonePattern = regexp.MustCompile(`(?i)\bzon[ae]\s*(\d+)`)

// BuildQuery concatenates street, municipality, department and country into
// a single search string. Blank fields are skipped, values are trimmed, and
// a field is dropped when its lower-cased value repeats one already included
// ("Guatemala, Guatemala" collapses to "Guatemala"). Returns "" when every
// field is blank; callers must fail fast without touching the provider.
func BuildQuery(addr domain.Address) string {
	return joinFields(addr.Street, addr.Municipality, addr.Department, countryField(addr, addr.Street, addr.Municipality, addr.Department))
}

// BuildZoneQuery narrows the street down to its "zona N" token and keeps the
// rest of the address. Returns "", false when the street has no zone token.
func BuildZoneQuery(addr domain.Address) (string, bool) {
	zone, ok := zoneToken(addr.Street)
	if !ok {
		return "", false
	}
	return joinFields(zone, addr.Municipality, addr.Department, countryField(addr, zone, addr.Municipality, addr.Department)), true
}

// BuildFallbackQuery omits the street entirely: municipality, department and
// country only. Returns "" when those fields are all blank.
func BuildFallbackQuery(addr domain.Address) string {
	return joinFields(addr.Municipality, addr.Department, countryField(addr, addr.Municipality, addr.Department))
}

// NormalizeQuery produces the cache key for a query string: lower-cased,
// trimmed, inner whitespace collapsed.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func joinFields(fields ...string) string {
	var parts []string
	seen := make(map[string]bool, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		parts = append(parts, f)
	}

	return strings.Join(parts, ", ")
}

func zoneToken(street string) (string, bool) {
	m := zonePattern.FindStringSubmatch(street)
	if m == nil {
		return "", false
	}
	return "zona " + m[1], true
}

// countryField returns the country to append: the customer's own value when
// present, otherwise the default country — but only when some other field
// carries text. A fully blank address must build a blank query so the engine
// can reject it without a network call.
func countryField(addr domain.Address, others ...string) string {
	if strings.TrimSpace(addr.Country) != "" {
		return addr.Country
	}
	for _, o := range others {
		if strings.TrimSpace(o) != "" {
			return domain.DefaultCountry
		}
	}
	return ""
}
