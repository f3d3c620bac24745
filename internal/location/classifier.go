// Package location derives work-type and relocation/international flags from
// free-text location strings. Everything here is heuristic and advisory:
// postings are annotated, never excluded.
package location

import (
	"regexp"
	"strings"

	"jobscout/internal/posting"
)

// Flag annotates a posting relative to the user's base location.
type Flag string

const (
	FlagNone          Flag = ""
	FlagRelocation    Flag = "Relocation"
	FlagInternational Flag = "International"
)

// descriptionHead limits how deep into a description explicit work-type
// wording is trusted; "remote" far down a page is usually boilerplate.
const descriptionHead = 500

var (
	partSplit    = regexp.MustCompile(`\s*[|;•]\s*|\s+or\s+`)
	statePattern = regexp.MustCompile(`,\s*([A-Z]{2})\b`)

	regionPatterns  = compileWordPatterns(keysOfSlices(regionCountries))
	countryPatterns = compileWordPatterns(keysOf(countryCodes))
)

func compileWordPatterns(names []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(names))
	for _, name := range names {
		patterns[name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return patterns
}

func keysOf(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func keysOfSlices(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// DetectCountries returns the set of ISO country codes implied by a location
// string. Multi-location strings split on separators and "or".
func DetectCountries(location string) map[string]struct{} {
	countries := make(map[string]struct{})
	if strings.TrimSpace(location) == "" {
		return countries
	}

	for _, part := range partSplit.Split(location, -1) {
		lower := strings.ToLower(strings.TrimSpace(part))
		if lower == "" {
			continue
		}

		// Multi-country regions first (NAMER, EMEA, ...).
		if codes, ok := matchRegion(lower); ok {
			for _, code := range codes {
				countries[code] = struct{}{}
			}
			continue
		}

		if code, ok := matchCountry(lower); ok {
			countries[code] = struct{}{}
			continue
		}

		// "City, CA" style state or province abbreviation.
		if m := statePattern.FindStringSubmatch(part); m != nil {
			abbr := m[1]
			if _, ok := usStates[abbr]; ok {
				countries["US"] = struct{}{}
				continue
			}
			if _, ok := caProvinces[abbr]; ok {
				countries["CA"] = struct{}{}
				continue
			}
		}

		for city, code := range knownCities {
			if strings.Contains(lower, city) {
				countries[code] = struct{}{}
				break
			}
		}
	}

	return countries
}

func matchRegion(part string) ([]string, bool) {
	for region, pattern := range regionPatterns {
		if pattern.MatchString(part) {
			return regionCountries[region], true
		}
	}
	return nil, false
}

func matchCountry(part string) (string, bool) {
	for name, pattern := range countryPatterns {
		if pattern.MatchString(part) {
			return countryCodes[name], true
		}
	}
	return "", false
}

// IsRegionOnly reports whether a location names only a region or country with
// no specific city or state. "NAMER" and "United States" are region-only;
// "San Francisco, CA" is not. Such listings imply no fixed office.
func IsRegionOnly(location string) bool {
	if strings.TrimSpace(location) == "" {
		return true
	}

	for _, part := range partSplit.Split(location, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if statePattern.MatchString(part) {
			return false
		}
		lower := strings.ToLower(part)
		for city := range knownCities {
			if strings.Contains(lower, city) {
				return false
			}
		}
		// A comma usually means "City, State" or "City, Country".
		if strings.Contains(part, ",") {
			return false
		}
	}
	return true
}

// ClassifyWorkType derives the work-type from a location string and the head
// of the description. Explicit remote/hybrid/on-site wording wins over
// geographic inference; a region-only location with a recognized geography is
// treated as Remote, and one with no signal at all stays Unknown.
func ClassifyWorkType(location, description string) posting.WorkType {
	loc := strings.ToLower(location)
	head := strings.ToLower(description)
	if runes := []rune(head); len(runes) > descriptionHead {
		head = string(runes[:descriptionHead])
	}

	switch {
	case strings.Contains(loc, "hybrid") || strings.Contains(head, "hybrid"):
		return posting.WorkTypeHybrid
	case strings.Contains(loc, "remote"):
		return posting.WorkTypeRemote
	case strings.Contains(loc, "on-site") || strings.Contains(loc, "onsite") || strings.Contains(loc, "in-office"):
		return posting.WorkTypeOnSite
	case strings.TrimSpace(location) == "":
		return posting.WorkTypeRemote
	case IsRegionOnly(location):
		if len(DetectCountries(location)) > 0 {
			return posting.WorkTypeRemote
		}
		return posting.WorkTypeUnknown
	default:
		return posting.WorkTypeOnSite
	}
}

// ClassifyFlag decides whether a posting needs a relocation or international
// annotation relative to the user's base. Empty user country disables
// flagging entirely.
func ClassifyFlag(location string, workType posting.WorkType, userCountry, userCity string) Flag {
	if strings.TrimSpace(userCountry) == "" {
		return FlagNone
	}
	userCC := strings.ToUpper(strings.TrimSpace(userCountry))
	jobCountries := DetectCountries(location)

	if workType == posting.WorkTypeRemote {
		if len(jobCountries) == 0 {
			return FlagNone // global remote
		}
		if _, ok := jobCountries[userCC]; ok {
			return FlagNone
		}
		return FlagInternational
	}

	if workType == posting.WorkTypeUnknown {
		return FlagNone
	}

	// On-site or hybrid.
	if len(jobCountries) == 0 {
		return FlagNone
	}
	if _, ok := jobCountries[userCC]; !ok {
		return FlagInternational
	}
	if strings.TrimSpace(userCity) == "" {
		return FlagNone
	}
	if cityInLocation(userCity, location) {
		return FlagNone
	}
	return FlagRelocation
}

func cityInLocation(userCity, location string) bool {
	city := strings.ToLower(userCity)
	if idx := strings.Index(city, ","); idx >= 0 {
		city = city[:idx]
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return false
	}
	return strings.Contains(strings.ToLower(location), city)
}
