package enterprise

import (
	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/registry"
	"github.com/sells-group/chain-tracker/internal/resolve"
)

// Snapshot is the complete input of a build. Every build consumes a full
// snapshot, never a diff against a previous result.
type Snapshot struct {
	Global    []registry.Row
	Domestic  []registry.Row
	Directory []model.Company
	Research  map[string]model.ResearchRecord
	News      []model.NewsItem
}

// Build merges the registries and attaches partnerships, research, news,
// logo domains and status. It does not modify the snapshot.
func Build(s Snapshot, m *resolve.Matcher) []Enterprise {
	es := Merge(s.Global, s.Domestic)
	links := LinkPartnerships(s.Directory, es, m)

	for i := range es {
		e := &es[i]
		e.Partnerships = links[e.Name]
		if r, ok := ResearchFor(s.Research, *e); ok {
			r.Initiatives = append([]model.Initiative(nil), r.Initiatives...)
			e.Research = &r
		}
		e.News = NewsFor(e.Name, s.News)
		if d, ok := m.Aliases().LogoDomain(e.Name); ok {
			e.LogoDomain = d
		}
		e.Status = Classify(*e)
	}
	return es
}
