// Package countries carries the static reference data for the pipeline: the
// DFA country list, the canonical-name alias table, and the set of region
// names present in the world map dataset the renderer matches against.
package countries

import "strings"

// nameMap maps scraped country names to the canonical spelling the map
// dataset expects. Entries exist only for known mismatches; absence means
// the scraped name passes through unchanged.
var nameMap = map[string]string{
	"Usa":                          "United States",
	"United States Of America":     "United States",
	"Uk":                           "United Kingdom",
	"Uae":                          "United Arab Emirates",
	"Democratic Republic Of The Congo": "Democratic Republic of the Congo",
	"Drc":                          "Democratic Republic of the Congo",
	"Congo":                        "Republic of the Congo",
	"Dpr Korea":                    "North Korea",
	"Republic Of Korea":            "South Korea",
	"Czech Republic":               "Czechia",
	"Cote D'ivoire":                "Côte d'Ivoire",
	"Cote Divoire":                 "Côte d'Ivoire",
	"Ivory Coast":                  "Côte d'Ivoire",
	"Burma":                        "Myanmar",
	"Cape Verde":                   "Cabo Verde",
	"East Timor":                   "Timor-Leste",
	"Timor Leste":                  "Timor-Leste",
	"Laos":                         "Lao PDR",
	"Macedonia":                    "North Macedonia",
	"Swaziland":                    "Eswatini",
	"The Bahamas":                  "Bahamas",
	"The Gambia":                   "Gambia",
	"Holy See":                     "Vatican City",
	"Vatican":                      "Vatican City",
	"Bosnia And Herzegovina":       "Bosnia and Herzegovina",
	"Trinidad And Tobago":          "Trinidad and Tobago",
	"Antigua And Barbuda":          "Antigua and Barbuda",
	"Saint Kitts And Nevis":        "Saint Kitts and Nevis",
	"Saint Vincent And The Grenadines": "Saint Vincent and the Grenadines",
	"Sao Tome And Principe":        "Sao Tome and Principe",
	"Guinea Bissau":                "Guinea-Bissau",
	"Papua New-Guinea":             "Papua New Guinea",
}

// Canonical returns the map-dataset spelling for a scraped country name.
// Unknown names pass through trimmed but otherwise as-is, so the function
// is idempotent.
func Canonical(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := nameMap[name]; ok {
		return canonical
	}
	return name
}

// IsRecognized reports whether a canonical name is present in the world
// map dataset. Rows failing this check render as "no data" and are logged.
func IsRecognized(canonical string) bool {
	_, ok := recognized[canonical]
	return ok
}

// recognized lists the region names of the world-countries GeoJSON used by
// the renderer. Microstates the dataset lacks polygons for (Monaco,
// San Marino, Andorra) simply render as no data.
var recognized = buildRecognized(
	"Afghanistan", "Albania", "Algeria", "Angola", "Antigua and Barbuda",
	"Argentina", "Armenia", "Australia", "Austria", "Azerbaijan",
	"Bahamas", "Bahrain", "Bangladesh", "Barbados", "Belarus", "Belgium",
	"Belize", "Benin", "Bhutan", "Bolivia", "Bosnia and Herzegovina",
	"Botswana", "Brazil", "Brunei", "Bulgaria", "Burkina Faso", "Burundi",
	"Cabo Verde", "Cambodia", "Cameroon", "Canada",
	"Central African Republic", "Chad", "Chile", "China", "Colombia",
	"Comoros", "Costa Rica", "Croatia", "Cuba", "Cyprus", "Czechia",
	"Côte d'Ivoire", "Democratic Republic of the Congo", "Denmark",
	"Djibouti", "Dominica", "Dominican Republic", "Ecuador", "Egypt",
	"El Salvador", "Equatorial Guinea", "Eritrea", "Estonia", "Eswatini",
	"Ethiopia", "Fiji", "Finland", "France", "Gabon", "Gambia", "Georgia",
	"Germany", "Ghana", "Greece", "Grenada", "Guatemala", "Guinea",
	"Guinea-Bissau", "Guyana", "Haiti", "Honduras", "Hungary", "Iceland",
	"India", "Indonesia", "Iran", "Iraq", "Ireland", "Israel", "Italy",
	"Jamaica", "Japan", "Jordan", "Kazakhstan", "Kenya", "Kiribati",
	"Kosovo", "Kuwait", "Kyrgyzstan", "Lao PDR", "Latvia", "Lebanon",
	"Lesotho", "Liberia", "Libya", "Liechtenstein", "Lithuania",
	"Luxembourg", "Madagascar", "Malawi", "Malaysia", "Maldives", "Mali",
	"Malta", "Marshall Islands", "Mauritania", "Mauritius", "Mexico",
	"Micronesia", "Moldova", "Mongolia", "Montenegro", "Morocco",
	"Mozambique", "Myanmar", "Namibia", "Nauru", "Nepal", "Netherlands",
	"New Zealand", "Nicaragua", "Niger", "Nigeria", "North Korea",
	"North Macedonia", "Norway", "Oman", "Pakistan", "Palau", "Panama",
	"Papua New Guinea", "Paraguay", "Peru", "Philippines", "Poland",
	"Portugal", "Qatar", "Republic of the Congo", "Romania", "Russia",
	"Rwanda", "Saint Kitts and Nevis", "Saint Lucia",
	"Saint Vincent and the Grenadines", "Samoa", "Sao Tome and Principe",
	"Saudi Arabia", "Senegal", "Serbia", "Seychelles", "Sierra Leone",
	"Singapore", "Slovakia", "Slovenia", "Solomon Islands", "Somalia",
	"South Africa", "South Korea", "South Sudan", "Spain", "Sri Lanka",
	"Sudan", "Suriname", "Sweden", "Switzerland", "Syria", "Taiwan",
	"Tajikistan", "Tanzania", "Thailand", "Timor-Leste", "Togo", "Tonga",
	"Trinidad and Tobago", "Tunisia", "Turkey", "Turkmenistan", "Tuvalu",
	"Uganda", "Ukraine", "United Arab Emirates", "United Kingdom",
	"United States", "Uruguay", "Uzbekistan", "Vanuatu", "Vatican City",
	"Venezuela", "Vietnam", "Yemen", "Zambia", "Zimbabwe",
)

func buildRecognized(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
