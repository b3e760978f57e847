// Package registry parses the revenue-ranked enterprise registries.
package registry

// Kind identifies which registry a row came from. Ranks are scoped to their
// registry: a global #7 and a domestic #7 are different enterprises.
type Kind string

const (
	KindGlobal   Kind = "global"
	KindDomestic Kind = "domestic"
)

// GlobalRevenueUnit is the multiplier applied to global-registry revenue,
// which is stated in millions. Domestic revenue is already absolute.
const GlobalRevenueUnit = 1_000_000

// Global registry columns.
const (
	globalColRank = iota
	globalColName
	globalColRevenue
	globalColRevenueChange
	globalColProfits
	globalColEmployees
	globalColCountry
)

// Domestic registry columns.
const (
	domesticColRank = iota
	domesticColName
	domesticColRevenue
	domesticColEmployees
	domesticColIndustry
	domesticColCity
	domesticColState
	domesticColCEO
	domesticColWebsite
)

// Row is one parsed registry entry. Rows are immutable once parsed.
type Row struct {
	Kind          Kind   `json:"kind"`
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	Revenue       string `json:"revenue"` // as stated; see GlobalRevenueUnit
	RevenueChange string `json:"revenue_change,omitempty"`
	Profits       string `json:"profits,omitempty"`
	Employees     int    `json:"employees"`
	Country       string `json:"country,omitempty"`
	Industry      string `json:"industry,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	CEO           string `json:"ceo,omitempty"`
	Website       string `json:"website,omitempty"`
	HQLocation    string `json:"hq_location,omitempty"`
}

// AbsoluteRevenue returns revenue in currency units, scaling global rows
// from millions. Unparsable revenue is 0.
func (r Row) AbsoluteRevenue() float64 {
	v := ParseNumber(r.Revenue)
	if r.Kind == KindGlobal {
		return v * GlobalRevenueUnit
	}
	return v
}
