package enterprise

import (
	"strconv"
	"strings"

	"github.com/sells-group/chain-tracker/internal/model"
)

// Classify returns the activity status of e. Every list and detail view uses
// this function so they cannot disagree.
func Classify(e Enterprise) Status {
	switch {
	case len(e.Partnerships) > 0:
		return StatusStrategic
	case e.Research != nil && len(e.Research.Initiatives) > 0, len(e.News) > 0:
		return StatusExploring
	default:
		return StatusEvaluating
	}
}

// MergeResearch folds a fresh research run into the previous record. Fresh
// initiatives are kept in full and come first; previous initiatives follow
// only when their title is absent from the fresh list.
func MergeResearch(prev *model.ResearchRecord, fresh model.ResearchRecord) model.ResearchRecord {
	if prev == nil {
		return fresh
	}

	out := model.ResearchRecord{
		Summary:     prev.Summary,
		LastUpdated: fresh.LastUpdated,
	}
	if strings.TrimSpace(fresh.Summary) != "" {
		out.Summary = fresh.Summary
	}
	if out.LastUpdated.IsZero() {
		out.LastUpdated = prev.LastUpdated
	}

	titles := make(map[string]struct{}, len(fresh.Initiatives))
	out.Initiatives = make([]model.Initiative, 0, len(fresh.Initiatives)+len(prev.Initiatives))
	for _, in := range fresh.Initiatives {
		titles[in.Title] = struct{}{}
		out.Initiatives = append(out.Initiatives, in)
	}
	for _, in := range prev.Initiatives {
		if _, ok := titles[in.Title]; ok {
			continue
		}
		out.Initiatives = append(out.Initiatives, in)
	}
	return out
}

// ResearchFor looks up the stored research of e by canonical name, falling
// back to the bare rank key older global-registry records were saved under.
func ResearchFor(research map[string]model.ResearchRecord, e Enterprise) (model.ResearchRecord, bool) {
	if r, ok := research[e.Name]; ok {
		return r, true
	}
	if e.Provenance != ProvenanceDomestic {
		if r, ok := research[strconv.Itoa(e.Rank)]; ok {
			return r, true
		}
	}
	return model.ResearchRecord{}, false
}

// StoreResearch merges fresh into the existing record of e and returns a new
// research map with the result stored under the canonical name.
func StoreResearch(research map[string]model.ResearchRecord, e Enterprise, fresh model.ResearchRecord) map[string]model.ResearchRecord {
	var prev *model.ResearchRecord
	if r, ok := ResearchFor(research, e); ok {
		prev = &r
	}

	out := make(map[string]model.ResearchRecord, len(research)+1)
	for k, v := range research {
		out[k] = v
	}
	out[e.Name] = MergeResearch(prev, fresh)
	return out
}

// NewsFor returns the news items that mention name, in store order. An item
// matches when its title or any related company contains name or is
// contained in it, ignoring case.
func NewsFor(name string, news []model.NewsItem) []model.NewsItem {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return nil
	}

	var out []model.NewsItem
	for _, item := range news {
		if mentions(n, item.Title) {
			out = append(out, item)
			continue
		}
		for _, rc := range item.RelatedCompanies {
			if mentions(n, rc) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func mentions(name, text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	return strings.Contains(t, name) || strings.Contains(name, t)
}
