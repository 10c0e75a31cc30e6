package stripe

// Nombres legibles para los códigos ISO-3166 que Stripe devuelve en las
// direcciones. Solo los países donde Stripe opera; un código desconocido se
// devuelve tal cual.
var countryNames = map[string]string{
	"AE": "United Arab Emirates",
	"AT": "Austria",
	"AU": "Australia",
	"BE": "Belgium",
	"BG": "Bulgaria",
	"BR": "Brazil",
	"CA": "Canada",
	"CH": "Switzerland",
	"CO": "Colombia",
	"CY": "Cyprus",
	"CZ": "Czech Republic",
	"DE": "Germany",
	"DK": "Denmark",
	"EE": "Estonia",
	"ES": "Spain",
	"FI": "Finland",
	"FR": "France",
	"GB": "United Kingdom",
	"GI": "Gibraltar",
	"GR": "Greece",
	"HK": "Hong Kong",
	"HR": "Croatia",
	"HU": "Hungary",
	"IE": "Ireland",
	"IN": "India",
	"IT": "Italy",
	"JP": "Japan",
	"LI": "Liechtenstein",
	"LT": "Lithuania",
	"LU": "Luxembourg",
	"LV": "Latvia",
	"MT": "Malta",
	"MX": "Mexico",
	"MY": "Malaysia",
	"NL": "Netherlands",
	"NO": "Norway",
	"NZ": "New Zealand",
	"PL": "Poland",
	"PT": "Portugal",
	"RO": "Romania",
	"SE": "Sweden",
	"SG": "Singapore",
	"SI": "Slovenia",
	"SK": "Slovakia",
	"TH": "Thailand",
	"US": "United States",
}

func countryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}
