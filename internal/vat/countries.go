package vat

import "sort"

// HomeCountry is the administration's own country. Orders shipped there
// use the domestic invoice template.
const HomeCountry = "NL"

// NonEUVATTypeID is the Rompslomp VAT type for zero-rated exports outside
// the EU. Margin products would need a different type; none are sold
// through the marketplace.
const NonEUVATTypeID = 681363806

// euCountries holds the ISO 3166-1 alpha-2 codes of the 27 EU member
// states, home country included.
var euCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "CY": {}, "CZ": {}, "DE": {}, "DK": {},
	"EE": {}, "ES": {}, "FI": {}, "FR": {}, "GR": {}, "HR": {}, "HU": {},
	"IE": {}, "IT": {}, "LT": {}, "LU": {}, "LV": {}, "MT": {}, "NL": {},
	"PL": {}, "PT": {}, "RO": {}, "SE": {}, "SI": {}, "SK": {},
}

// IsEUMember reports whether code is an EU member state.
func IsEUMember(code string) bool {
	_, ok := euCountries[code]
	return ok
}

// EUMembers returns the member state codes in sorted order.
func EUMembers() []string {
	members := make([]string, 0, len(euCountries))
	for code := range euCountries {
		members = append(members, code)
	}
	sort.Strings(members)
	return members
}
