package services

import (
	"sort"
	"strings"

	"clubpoints/models"
)

// Region buckets in overall west-to-east presentation order. Lower sorts
// first; unrecognized input lands in the last bucket.
const (
	RegionAmericas = iota
	RegionMexicoCentral
	RegionEurope
	RegionAsia
	RegionAustralia
	RegionUnknown
)

// commonTZOrder is the fixed west-to-east ordering of well-known resort
// timezones. Timezones absent from this list sort after known ones.
var commonTZOrder = []string{
	"Pacific/Honolulu",
	"America/Los_Angeles",
	"America/Denver",
	"America/Chicago",
	"America/New_York",
	"America/Puerto_Rico",

	"Europe/London",
	"Europe/Paris",
	"Europe/Madrid",

	"Asia/Bangkok",
	"Asia/Singapore",

	"Australia/Sydney",
}

const unknownTZOrderIndex = 999

// tzOffsetMinutes holds UTC offsets at the fixed reference instant
// 2025-01-01T00:00Z. A static table keeps the classifier total and free of
// the host timezone database; unknown zones read as offset 0, matching the
// original behavior.
var tzOffsetMinutes = map[string]int{
	"Pacific/Honolulu":     -600,
	"US/Hawaii":            -600,
	"America/Anchorage":    -540,
	"US/Alaska":            -540,
	"America/Los_Angeles":  -480,
	"US/Pacific":           -480,
	"America/Denver":       -420,
	"America/Mazatlan":     -420,
	"US/Mountain":          -420,
	"America/Chicago":      -360,
	"US/Central":           -360,
	"America/Cancun":       -300,
	"America/New_York":     -300,
	"US/Eastern":           -300,
	"America/Puerto_Rico":  -240,
	"America/Aruba":        -240,
	"America/St_Thomas":    -240,
	"UTC":                  0,
	"Europe/London":        0,
	"Europe/Paris":         60,
	"Europe/Madrid":        60,
	"Asia/Bangkok":         420,
	"Asia/Singapore":       480,
	"Asia/Denpasar":        480,
	"Asia/Makassar":        480,
	"Australia/Sydney":     660, // DST at the reference instant
}

// asiaPacificCodes maps Asia/Australia country codes to buckets. Checked
// before US state codes so that "ID" resolves to Indonesia, not Idaho.
var asiaPacificCodes = map[string]int{
	"ID": RegionAsia,
	"TH": RegionAsia,
	"SG": RegionAsia,
	"MY": RegionAsia,
	"JP": RegionAsia,
	"PH": RegionAsia,
	"VN": RegionAsia,
	"KH": RegionAsia,
	"CN": RegionAsia,
	"AU": RegionAustralia,
	"NZ": RegionAustralia,
}

var europeCodes = map[string]struct{}{
	"GB": {}, "UK": {}, "FR": {}, "ES": {}, "IT": {}, "PT": {}, "DE": {},
}

var mexicoCentralCodes = map[string]struct{}{
	"MX": {}, "AW": {}, "BS": {}, "VI": {},
}

var usStateCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {},
	"IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {},
	"MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {},
	"NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {},
	"OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {}, "TN": {},
	"TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {},
	"WY": {}, "DC": {}, "PR": {},
}

// ResortSortKey orders resorts west to east for presentation: region
// bucket first, then the fixed timezone order, then UTC offset at the
// reference instant, then display name.
type ResortSortKey struct {
	RegionPriority   int    `json:"region_priority"`
	TZOrderIndex     int    `json:"tz_order_index"`
	UTCOffsetMinutes int    `json:"utc_offset_minutes"`
	Name             string `json:"name"`
}

// SortKeyFor classifies a resort. Pure and total: never fails, never
// consults external state.
func SortKeyFor(r *models.Resort) ResortSortKey {
	key := ResortSortKey{
		RegionPriority:   classifyRegion(r.Code, r.Timezone),
		TZOrderIndex:     unknownTZOrderIndex,
		UTCOffsetMinutes: tzOffsetMinutes[strings.TrimSpace(r.Timezone)],
		Name:             r.DisplayName,
	}
	tz := strings.TrimSpace(r.Timezone)
	for i, known := range commonTZOrder {
		if known == tz {
			key.TZOrderIndex = i
			break
		}
	}
	return key
}

// classifyRegion resolves the region bucket, preferring the code over the
// timezone. Country/region codes win over US state abbreviations.
func classifyRegion(code, tz string) int {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" && len(code) == 2 {
		if bucket, ok := asiaPacificCodes[code]; ok {
			return bucket
		}
		if _, ok := europeCodes[code]; ok {
			return RegionEurope
		}
		if _, ok := mexicoCentralCodes[code]; ok {
			return RegionMexicoCentral
		}
		if _, ok := usStateCodes[code]; ok {
			return RegionAmericas
		}
	}

	tz = strings.TrimSpace(tz)
	switch tz {
	case "America/Cancun", "America/Mazatlan":
		// Mexican beach zones carry the America/ prefix but belong with
		// the Mexico/Central bucket for presentation.
		return RegionMexicoCentral
	}
	switch {
	case strings.HasPrefix(tz, "America/"):
		return RegionAmericas
	case strings.HasPrefix(tz, "Europe/"):
		return RegionEurope
	case strings.HasPrefix(tz, "Asia/"):
		return RegionAsia
	case strings.HasPrefix(tz, "Australia/"):
		return RegionAustralia
	}
	return RegionUnknown
}

// Less orders two sort keys.
func (k ResortSortKey) Less(other ResortSortKey) bool {
	if k.RegionPriority != other.RegionPriority {
		return k.RegionPriority < other.RegionPriority
	}
	if k.TZOrderIndex != other.TZOrderIndex {
		return k.TZOrderIndex < other.TZOrderIndex
	}
	if k.UTCOffsetMinutes != other.UTCOffsetMinutes {
		return k.UTCOffsetMinutes < other.UTCOffsetMinutes
	}
	return k.Name < other.Name
}

// SortResortsWestToEast returns a new slice ordered for presentation.
func SortResortsWestToEast(resorts []*models.Resort) []*models.Resort {
	out := append([]*models.Resort(nil), resorts...)
	sort.SliceStable(out, func(i, j int) bool {
		return SortKeyFor(out[i]).Less(SortKeyFor(out[j]))
	})
	return out
}
