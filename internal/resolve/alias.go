package resolve

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// defaultAliases maps informal or alternate names to the canonical registry
// spelling. Keys are matched exactly (case-sensitive).
var defaultAliases = map[string]string{
	"Google":              "Alphabet",
	"Google Cloud":        "Alphabet",
	"Facebook":            "Meta Platforms",
	"Meta":                "Meta Platforms",
	"AWS":                 "Amazon",
	"Amazon Web Services": "Amazon",
	"JPMorgan":            "JPMorgan Chase",
	"J.P. Morgan":         "JPMorgan Chase",
	"Onyx by J.P. Morgan": "JPMorgan Chase",
	"Microsoft Azure":     "Microsoft",
	"Citi":                "Citigroup",
	"BofA":                "Bank of America",
	"Goldman Sachs":       "Goldman Sachs Group",
	"Morgan Stanley Bank": "Morgan Stanley",
	"Samsung":             "Samsung Electronics",
	"Toyota":              "Toyota Motor",
	"HSBC":                "HSBC Holdings",
	"BNY Mellon":          "Bank of New York Mellon",
	"BNY":                 "Bank of New York Mellon",
	"Fidelity":            "FMR",
	"State Street Bank":   "State Street",
	"Mastercard Inc":      "Mastercard",
	"Walmart Inc.":        "Walmart",
	"Starbucks Coffee":    "Starbucks",
}

// defaultLogoDomains overrides the logo lookup domain for canonical names whose
// website does not match their brand.
var defaultLogoDomains = map[string]string{
	"Alphabet":                "google.com",
	"Meta Platforms":          "meta.com",
	"JPMorgan Chase":          "jpmorganchase.com",
	"Berkshire Hathaway":      "berkshirehathaway.com",
	"Bank of New York Mellon": "bny.com",
	"FMR":                     "fidelity.com",
}

// AliasTable is an immutable alias and logo-domain override table. It is
// built once and shared by reference; all methods are safe on a nil table.
type AliasTable struct {
	aliases     map[string]string
	logoDomains map[string]string
}

// aliasFile is the on-disk YAML shape of an alias overlay.
type aliasFile struct {
	Aliases     map[string]string `yaml:"aliases"`
	LogoDomains map[string]string `yaml:"logo_domains"`
}

// NewAliasTable copies the given maps into a new table.
func NewAliasTable(aliases, logoDomains map[string]string) *AliasTable {
	t := &AliasTable{
		aliases:     make(map[string]string, len(aliases)),
		logoDomains: make(map[string]string, len(logoDomains)),
	}
	for k, v := range aliases {
		t.aliases[k] = v
	}
	for k, v := range logoDomains {
		t.logoDomains[k] = v
	}
	return t
}

// DefaultAliasTable returns the built-in table.
func DefaultAliasTable() *AliasTable {
	return NewAliasTable(defaultAliases, defaultLogoDomains)
}

// LoadAliasTable reads a YAML overlay and layers it on top of the built-in
// table. Entries in the file win over built-in entries. An empty path yields
// the built-in table.
func LoadAliasTable(path string) (*AliasTable, error) {
	if path == "" {
		return DefaultAliasTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "resolve: read alias file %s", path)
	}

	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "resolve: parse alias file %s", path)
	}

	aliases := make(map[string]string, len(defaultAliases)+len(f.Aliases))
	for k, v := range defaultAliases {
		aliases[k] = v
	}
	for k, v := range f.Aliases {
		aliases[k] = v
	}
	logos := make(map[string]string, len(defaultLogoDomains)+len(f.LogoDomains))
	for k, v := range defaultLogoDomains {
		logos[k] = v
	}
	for k, v := range f.LogoDomains {
		logos[k] = v
	}

	zap.L().Debug("resolve: loaded alias overlay",
		zap.String("path", path),
		zap.Int("aliases", len(f.Aliases)),
		zap.Int("logo_domains", len(f.LogoDomains)),
	)

	return NewAliasTable(aliases, logos), nil
}

// Resolve returns the canonical name for an alias.
func (t *AliasTable) Resolve(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	canonical, ok := t.aliases[name]
	return canonical, ok
}

// Canonical returns the alias target for name, or name itself.
func (t *AliasTable) Canonical(name string) string {
	if canonical, ok := t.Resolve(name); ok {
		return canonical
	}
	return name
}

// LogoDomain returns the logo domain override for a canonical name.
func (t *AliasTable) LogoDomain(canonical string) (string, bool) {
	if t == nil {
		return "", false
	}
	d, ok := t.logoDomains[canonical]
	return d, ok
}

// Len returns the number of aliases.
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.aliases)
}
