package registry

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParseGlobal parses global-registry text.
func ParseGlobal(text string) []Row {
	return Parse(KindGlobal, text)
}

// ParseDomestic parses domestic-registry text.
func ParseDomestic(text string) []Row {
	return Parse(KindDomestic, text)
}

// Parse converts registry text into rows in source order. The first
// non-blank line is the header. Malformed rows never abort the parse:
// unparsable numbers become 0 and rows without a name are dropped.
func Parse(kind Kind, text string) []Row {
	lines := strings.Split(text, "\n")

	rows := make([]Row, 0, len(lines))
	dropped := 0
	header := true
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header {
			header = false
			continue
		}

		fields := SplitLine(line)
		var row Row
		switch kind {
		case KindDomestic:
			row = domesticRow(fields)
		default:
			row = globalRow(fields)
		}
		if row.Name == "" {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	if dropped > 0 {
		zap.L().Debug("registry: dropped rows without a name",
			zap.String("kind", string(kind)),
			zap.Int("dropped", dropped),
		)
	}
	return rows
}

func globalRow(f []string) Row {
	return Row{
		Kind:          KindGlobal,
		Rank:          int(ParseNumber(field(f, globalColRank))),
		Name:          field(f, globalColName),
		Revenue:       field(f, globalColRevenue),
		RevenueChange: field(f, globalColRevenueChange),
		Profits:       field(f, globalColProfits),
		Employees:     int(ParseNumber(field(f, globalColEmployees))),
		Country:       field(f, globalColCountry),
	}
}

func domesticRow(f []string) Row {
	city := field(f, domesticColCity)
	state := field(f, domesticColState)
	return Row{
		Kind:       KindDomestic,
		Rank:       int(ParseNumber(field(f, domesticColRank))),
		Name:       field(f, domesticColName),
		Revenue:    field(f, domesticColRevenue),
		Employees:  int(ParseNumber(field(f, domesticColEmployees))),
		Industry:   field(f, domesticColIndustry),
		City:       city,
		State:      state,
		CEO:        field(f, domesticColCEO),
		Website:    field(f, domesticColWebsite),
		HQLocation: joinLocation(city, state),
	}
}

func field(f []string, i int) string {
	if i < len(f) {
		return strings.TrimSpace(f[i])
	}
	return ""
}

func joinLocation(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

// SplitLine splits one delimited line. A quote character toggles the
// inside-quotes state, commas inside quotes do not split, and a doubled quote
// inside a quoted field decodes to one literal quote.
func SplitLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// numberReplacer strips thousands separators, currency symbols and padding.
var numberReplacer = strings.NewReplacer(
	",", "",
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	" ", "",
)

// ParseNumber parses a registry numeric field, returning 0 when it cannot.
func ParseNumber(s string) float64 {
	s = numberReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
