package geo

import (
	"regexp"
	"strings"
)

// stateNames maps Brazilian state abbreviations to their names, used to
// post-filter suggestions when the query carries a trailing "- XX" hint.
var stateNames = map[string]string{
	"AC": "Acre",
	"AL": "Alagoas",
	"AP": "Amapá",
	"AM": "Amazonas",
	"BA": "Bahia",
	"CE": "Ceará",
	"DF": "Distrito Federal",
	"ES": "Espírito Santo",
	"GO": "Goiás",
	"MA": "Maranhão",
	"MT": "Mato Grosso",
	"MS": "Mato Grosso do Sul",
	"MG": "Minas Gerais",
	"PA": "Pará",
	"PB": "Paraíba",
	"PR": "Paraná",
	"PE": "Pernambuco",
	"PI": "Piauí",
	"RJ": "Rio de Janeiro",
	"RN": "Rio Grande do Norte",
	"RS": "Rio Grande do Sul",
	"RO": "Rondônia",
	"RR": "Roraima",
	"SC": "Santa Catarina",
	"SP": "São Paulo",
	"SE": "Sergipe",
	"TO": "Tocantins",
}

var regionSuffix = regexp.MustCompile(`-\s*([A-Za-z]{2})$`)

// Query is a parsed search input: the bare place name plus an optional
// administrative-region hint.
type Query struct {
	Name string
	// Abbr is the two-letter suffix as typed, upper-cased; empty when the
	// input carried no suffix.
	Abbr string
	// Region is the full region name, empty when Abbr is unknown or absent.
	Region string
}

// ParseQuery splits an optional trailing "- XX" region suffix off a query.
func ParseQuery(raw string) Query {
	q := strings.TrimSpace(raw)
	m := regionSuffix.FindStringSubmatchIndex(q)
	if m == nil {
		return Query{Name: q}
	}
	abbr := strings.ToUpper(q[m[2]:m[3]])
	return Query{
		Name:   strings.TrimSpace(q[:m[0]]),
		Abbr:   abbr,
		Region: stateNames[abbr],
	}
}

// FilterByRegion keeps Brazilian candidates whose admin region contains the
// given region name, case-insensitively. An empty region keeps everything.
func FilterByRegion(list []Place, region string) []Place {
	if region == "" {
		return list
	}
	needle := strings.ToLower(region)
	out := make([]Place, 0, len(list))
	for _, p := range list {
		if p.CountryCode == "BR" && strings.Contains(strings.ToLower(p.Admin1), needle) {
			out = append(out, p)
		}
	}
	return out
}
