package location

// Curated lookup tables for geographic inference. Keys are lowercase; states
// and provinces stay uppercase because they are matched as ", XX" suffixes.

var usStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {},
	"FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {},
	"KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {}, "MI": {}, "MN": {}, "MS": {},
	"MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {}, "NM": {}, "NY": {},
	"NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {},
	"WI": {}, "WY": {}, "DC": {},
}

var caProvinces = map[string]struct{}{
	"AB": {}, "BC": {}, "MB": {}, "NB": {}, "NL": {}, "NS": {}, "NT": {},
	"NU": {}, "ON": {}, "PE": {}, "QC": {}, "SK": {}, "YT": {},
}

var countryCodes = map[string]string{
	"united states": "US", "united states of america": "US", "us": "US", "usa": "US",
	"canada":         "CA",
	"united kingdom": "UK", "england": "UK", "uk": "UK",
	"germany": "DE", "france": "FR", "netherlands": "NL",
	"ireland": "IE", "israel": "IL", "spain": "ES", "italy": "IT",
	"sweden": "SE", "norway": "NO", "denmark": "DK", "finland": "FI",
	"switzerland": "CH", "austria": "AT", "belgium": "BE", "portugal": "PT",
	"poland":    "PL",
	"australia": "AU", "india": "IN", "singapore": "SG", "japan": "JP",
	"south korea": "KR", "china": "CN", "taiwan": "TW",
	"brazil": "BR", "mexico": "MX",
	"uae": "AE", "united arab emirates": "AE", "qatar": "QA", "saudi arabia": "SA",
}

var regionCountries = map[string][]string{
	"namer":         {"US", "CA"},
	"north america": {"US", "CA"},
	"americas":      {"US", "CA"},
	"latam":         {"MX", "BR"},
	"emea":          {"UK", "DE", "FR", "NL", "IE", "IL", "ES", "CH"},
	"europe":        {"UK", "DE", "FR", "NL", "IE", "ES", "CH", "SE"},
	"apac":          {"IN", "SG", "JP", "AU", "KR"},
}

var knownCities = map[string]string{
	"san francisco": "US", "new york": "US", "new york city": "US", "nyc": "US",
	"seattle": "US", "austin": "US", "chicago": "US", "los angeles": "US",
	"mountain view": "US", "palo alto": "US", "menlo park": "US",
	"sunnyvale": "US", "redwood city": "US", "san mateo": "US",
	"san jose": "US", "miami": "US", "dallas": "US", "houston": "US",
	"boston": "US", "denver": "US", "portland": "US", "phoenix": "US",
	"salt lake city": "US", "washington": "US", "atlanta": "US",
	"toronto": "CA", "vancouver": "CA", "montreal": "CA", "ottawa": "CA",
	"london": "UK", "edinburgh": "UK", "manchester": "UK",
	"dublin": "IE", "paris": "FR", "berlin": "DE", "munich": "DE",
	"amsterdam": "NL", "zurich": "CH", "barcelona": "ES", "stockholm": "SE",
	"tel aviv": "IL", "singapore": "SG", "tokyo": "JP", "seoul": "KR",
	"bangalore": "IN", "bengaluru": "IN", "mumbai": "IN", "hyderabad": "IN",
	"sydney": "AU", "melbourne": "AU",
	"dubai": "AE", "riyadh": "SA",
}
