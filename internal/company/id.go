package company

import (
	"strings"
)

// IDPrefix namespaces directory company IDs.
const IDPrefix = "company-"

// idSuffixes are legal-entity words stripped when they are the final word of
// a name. Compared case-insensitively.
var idSuffixes = map[string]struct{}{
	"inc":         {},
	"llc":         {},
	"ltd":         {},
	"limited":     {},
	"corp":        {},
	"corporation": {},
	"group":       {},
	"holdings":    {},
	"plc":         {},
	"sa":          {},
	"ag":          {},
	"gmbh":        {},
}

// NewID derives the stable directory ID for a company name. The same name
// always yields the same ID, so it doubles as the directory primary key and
// the import collision check.
func NewID(name string) string {
	s := strings.NewReplacer(",", "", ".", "").Replace(name)
	s = strings.TrimSpace(s)

	if i := strings.LastIndexAny(s, " \t"); i >= 0 {
		if _, ok := idSuffixes[strings.ToLower(s[i+1:])]; ok {
			s = s[:i]
		}
	}

	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(IDPrefix) + len(s))
	b.WriteString(IDPrefix)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
