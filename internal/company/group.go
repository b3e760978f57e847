package company

import (
	"strings"

	"github.com/sells-group/chain-tracker/internal/model"
)

// corporateUnitMarkers name distinct business units rather than local
// branches: "Coinbase Ventures" is not a subsidiary office of "Coinbase".
var corporateUnitMarkers = []string{
	"Ventures",
	"Capital",
	"Labs",
	"Investments",
	"Fund",
	"Funds",
	"Crypto",
	"Digital",
	"Asset Management",
	"Research",
	"Foundation",
}

// GroupedEntry is a top-level directory entry with its subsidiaries.
type GroupedEntry struct {
	Parent       model.Company   `json:"parent"`
	Subsidiaries []model.Company `json:"subsidiaries,omitempty"`
}

// Group partitions a filtered view into parent/subsidiary entries.
//
// Parents are detected against directory (the full, unfiltered directory; nil
// means the view itself). A subsidiary is attached to its highest ancestor
// present in the view; when no ancestor is present it is surfaced as a
// standalone entry. Entries follow view order, as do subsidiaries within an
// entry. The result depends only on the inputs.
func Group(view, directory []model.Company) []GroupedEntry {
	if directory == nil {
		directory = view
	}
	g := newGrouper(directory)

	inView := make(map[string]struct{}, len(view))
	for _, c := range view {
		inView[c.Name] = struct{}{}
	}

	// Resolve each view company to the in-view ancestor it groups under.
	owner := make([]string, len(view))
	for i, c := range view {
		owner[i] = g.topAncestorInView(c, inView)
	}

	// A parent cycle leaves no top-level owner; such members stand alone.
	topLevel := make(map[string]struct{}, len(view))
	for i, c := range view {
		if owner[i] == "" {
			topLevel[c.Name] = struct{}{}
		}
	}
	for i := range owner {
		if _, ok := topLevel[owner[i]]; owner[i] != "" && !ok {
			owner[i] = ""
		}
	}

	entries := make([]GroupedEntry, 0, len(view))
	entryOf := make(map[string]int, len(view))
	for i, c := range view {
		if owner[i] != "" {
			continue
		}
		if _, seen := entryOf[c.Name]; !seen {
			entryOf[c.Name] = len(entries)
		}
		entries = append(entries, GroupedEntry{Parent: c})
	}
	for i, c := range view {
		if owner[i] == "" {
			continue
		}
		e := entryOf[owner[i]]
		entries[e].Subsidiaries = append(entries[e].Subsidiaries, c)
	}
	return entries
}

type grouper struct {
	byName map[string]model.Company
	byID   map[string]model.Company
}

func newGrouper(directory []model.Company) *grouper {
	g := &grouper{
		byName: make(map[string]model.Company, len(directory)),
		byID:   make(map[string]model.Company, len(directory)),
	}
	for _, c := range directory {
		if c.Name == "" {
			continue
		}
		if _, ok := g.byName[c.Name]; !ok {
			g.byName[c.Name] = c
		}
		if _, ok := g.byID[NewID(c.Name)]; !ok {
			g.byID[NewID(c.Name)] = c
		}
	}
	return g
}

// parentOf applies the explicit override first, then prefix auto-detection.
func (g *grouper) parentOf(c model.Company) string {
	if p := strings.TrimSpace(c.ParentCompany); p != "" && p != c.Name {
		if _, ok := g.byName[p]; ok {
			return p
		}
		if d, ok := g.byID[NewID(p)]; ok && d.Name != c.Name {
			return d.Name
		}
		// Unknown parent: never in the view, so c surfaces standalone.
		return p
	}
	return g.detectParent(c.Name)
}

// detectParent finds the longest directory name that prefixes name followed
// by a space, skipping prefixes whose remainder is a corporate-unit marker.
func (g *grouper) detectParent(name string) string {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] != ' ' {
			continue
		}
		prefix := name[:i]
		if _, ok := g.byName[prefix]; !ok {
			continue
		}
		if isCorporateUnit(strings.TrimSpace(name[i+1:])) {
			continue
		}
		return prefix
	}
	return ""
}

// topAncestorInView walks the parent chain of c and returns the highest
// ancestor present in the view, or "" when c is top-level.
func (g *grouper) topAncestorInView(c model.Company, inView map[string]struct{}) string {
	top := ""
	visited := map[string]struct{}{c.Name: {}}
	cur := c
	for {
		p := g.parentOf(cur)
		if p == "" {
			return top
		}
		if _, loop := visited[p]; loop {
			return top
		}
		visited[p] = struct{}{}
		if _, ok := inView[p]; ok {
			top = p
		}
		next, ok := g.byName[p]
		if !ok {
			return top
		}
		cur = next
	}
}

// isCorporateUnit reports whether suffix is, or begins with, a marker word.
func isCorporateUnit(suffix string) bool {
	s := strings.ToLower(suffix)
	for _, m := range corporateUnitMarkers {
		m = strings.ToLower(m)
		if s == m || strings.HasPrefix(s, m+" ") {
			return true
		}
	}
	return false
}
