package company

import (
	"strings"

	"github.com/sells-group/chain-tracker/internal/model"
)

// Patch is a partial company record returned by enrichment or import. Nil or
// blank fields leave the target untouched.
type Patch struct {
	Description   *string         `json:"description,omitempty"`
	Website       *string         `json:"website,omitempty"`
	Region        *string         `json:"region,omitempty"`
	Focus         *string         `json:"focus,omitempty"`
	ParentCompany *string         `json:"parent_company,omitempty"`
	Categories    []string        `json:"categories,omitempty"`
	Partners      []model.Partner `json:"partners,omitempty"`
}

// Empty reports whether the patch carries no usable value.
func (p Patch) Empty() bool {
	for _, s := range []*string{p.Description, p.Website, p.Region, p.Focus, p.ParentCompany} {
		if s != nil && strings.TrimSpace(*s) != "" {
			return false
		}
	}
	return len(p.Categories) == 0 && len(p.Partners) == 0
}

// ApplyPatch merges p into c field by field: the last non-empty value wins,
// categories are unioned and partners are upserted by name. Name and ID are
// never changed by a patch. c's slices are not modified.
func ApplyPatch(c model.Company, p Patch) model.Company {
	setString(&c.Description, p.Description)
	setString(&c.Website, p.Website)
	setString(&c.Region, p.Region)
	setString(&c.Focus, p.Focus)
	setString(&c.ParentCompany, p.ParentCompany)

	c.Categories = unionCategories(c.Categories, p.Categories)
	c.Partners = mergePartners(c.Partners, p.Partners)
	return c
}

func setString(dst *string, v *string) {
	if v == nil {
		return
	}
	if s := strings.TrimSpace(*v); s != "" {
		*dst = s
	}
}

// unionCategories returns a followed by the entries of b not already present,
// compared case-insensitively.
func unionCategories(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, cat := range list {
			cat = strings.TrimSpace(cat)
			key := strings.ToLower(cat)
			if cat == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, cat)
		}
	}
	return out
}

// mergePartners upserts incoming partners into existing by case-insensitive
// name. Non-empty incoming fields overwrite existing ones.
func mergePartners(existing, incoming []model.Partner) []model.Partner {
	if len(incoming) == 0 {
		return existing
	}
	out := make([]model.Partner, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	pos := make(map[string]int, len(out))
	for i, p := range out {
		pos[partnerKey(p.Name)] = i
	}

	for _, p := range incoming {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		key := partnerKey(p.Name)
		i, ok := pos[key]
		if !ok {
			pos[key] = len(out)
			out = append(out, p)
			continue
		}
		cur := &out[i]
		setString(&cur.Description, &p.Description)
		setString(&cur.Date, &p.Date)
		setString(&cur.SourceURL, &p.SourceURL)
	}
	return out
}

func partnerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
