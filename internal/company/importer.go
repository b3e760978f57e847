package company

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/chain-tracker/internal/model"
)

// importColumns maps accepted header spellings to patch fields.
var importColumns = map[string]string{
	"name":           "name",
	"company":        "name",
	"company name":   "name",
	"description":    "description",
	"website":        "website",
	"url":            "website",
	"region":         "region",
	"country":        "region",
	"focus":          "focus",
	"parent":         "parent_company",
	"parent company": "parent_company",
	"parent_company": "parent_company",
	"categories":     "categories",
	"category":       "categories",
	"partners":       "partners",
}

// ImportResult counts what an import did to the directory.
type ImportResult struct {
	Added   int `json:"added"`
	Merged  int `json:"merged"`
	Skipped int `json:"skipped"`
}

// Import upserts records (keyed by lower-cased header) into the directory.
// A record whose ID already exists is merged with ApplyPatch instead of
// duplicated. Records without a name are skipped.
func Import(dir []model.Company, records []map[string]string, now time.Time) ([]model.Company, ImportResult) {
	var res ImportResult
	for _, rec := range records {
		name, p := RecordPatch(rec)
		if name == "" {
			res.Skipped++
			continue
		}

		var (
			created bool
			err     error
		)
		dir, created, err = Upsert(dir, name, p, now)
		switch {
		case err != nil:
			res.Skipped++
			zap.L().Warn("company: import skipped", zap.String("name", name), zap.Error(err))
		case created:
			res.Added++
		default:
			res.Merged++
		}
	}
	return dir, res
}

// RecordPatch converts one import record into a company name and patch.
// Categories and partners are semicolon- or comma-separated lists.
func RecordPatch(rec map[string]string) (string, Patch) {
	var (
		name string
		p    Patch
	)
	for header, value := range rec {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		header = strings.ToLower(strings.TrimSpace(header))
		switch importColumns[header] {
		case "name":
			if name == "" || header == "name" {
				name = value
			}
		case "description":
			p.Description = &value
		case "website":
			p.Website = &value
		case "region":
			p.Region = &value
		case "focus":
			p.Focus = &value
		case "parent_company":
			p.ParentCompany = &value
		case "categories":
			p.Categories = splitList(value)
		case "partners":
			for _, partner := range splitList(value) {
				p.Partners = append(p.Partners, model.Partner{Name: partner})
			}
		}
	}
	return name, p
}

func splitList(s string) []string {
	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
