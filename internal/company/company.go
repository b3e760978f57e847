// Package company implements the directory-side engine: stable IDs,
// enrichment patches, subsidiary grouping and duplicate resolution.
package company

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/chain-tracker/internal/model"
)

// ErrDuplicate is returned when a company's ID collides with an existing entry.
var ErrDuplicate = errors.New("company: duplicate id")

// Index returns the position of the company with the given ID, or -1. The
// ID derived from a company's name is checked first, then the stored ID, so
// records with a missing or stale stored ID are still found.
func Index(dir []model.Company, id string) int {
	for i := range dir {
		if strings.TrimSpace(dir[i].Name) != "" && NewID(dir[i].Name) == id {
			return i
		}
	}
	for i := range dir {
		if dir[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends c to the directory after assigning its ID. The input slice is
// not modified. Returns ErrDuplicate when another entry already has the ID.
func Add(dir []model.Company, c model.Company, now time.Time) ([]model.Company, model.Company, error) {
	if strings.TrimSpace(c.Name) == "" {
		return dir, c, eris.New("company: name is required")
	}
	c.Name = strings.TrimSpace(c.Name)
	c.ID = NewID(c.Name)
	if c.AddedAt.IsZero() {
		c.AddedAt = now
	}
	if Index(dir, c.ID) >= 0 {
		return dir, c, eris.Wrapf(ErrDuplicate, "company: %q (%s)", c.Name, c.ID)
	}

	out := make([]model.Company, 0, len(dir)+1)
	out = append(out, dir...)
	out = append(out, c)
	return out, c, nil
}

// Upsert adds a new company or, when its ID already exists, applies p to the
// existing entry. Reports whether a new entry was created.
func Upsert(dir []model.Company, name string, p Patch, now time.Time) ([]model.Company, bool, error) {
	id := NewID(strings.TrimSpace(name))
	if i := Index(dir, id); i >= 0 {
		out := make([]model.Company, len(dir))
		copy(out, dir)
		out[i] = ApplyPatch(out[i], p)
		if out[i].ID == "" {
			out[i].ID = NewID(out[i].Name)
		}
		out[i].UpdatedAt = now
		return out, false, nil
	}

	c := ApplyPatch(model.Company{Name: name}, p)
	out, _, err := Add(dir, c, now)
	if err != nil {
		return dir, false, err
	}
	return out, true, nil
}

// Remove deletes the company with the given ID, matched as in Index.
func Remove(dir []model.Company, id string) ([]model.Company, bool) {
	i := Index(dir, id)
	if i < 0 {
		return dir, false
	}
	out := make([]model.Company, 0, len(dir)-1)
	out = append(out, dir[:i]...)
	out = append(out, dir[i+1:]...)
	return out, true
}

// Sort orders for a filtered view.
const (
	SortDirectory = ""      // keep directory order
	SortName      = "name"  // case-insensitive name
	SortAdded     = "added" // newest first
)

// Filter selects the directory view shown to the user.
type Filter struct {
	Category string
	Region   string
	Query    string // case-insensitive substring of name
	Sort     string
}

// View returns the filtered and sorted directory. The input is not modified.
func View(dir []model.Company, f Filter) []model.Company {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]model.Company, 0, len(dir))
	for _, c := range dir {
		if f.Category != "" && !c.HasCategory(f.Category) {
			continue
		}
		if f.Region != "" && !strings.EqualFold(strings.TrimSpace(c.Region), strings.TrimSpace(f.Region)) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		out = append(out, c)
	}

	switch f.Sort {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortAdded:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AddedAt.After(out[j].AddedAt)
		})
	}
	return out
}
