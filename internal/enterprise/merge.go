package enterprise

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/chain-tracker/internal/registry"
)

// Merge unifies the global and domestic registries.
//
// Each global row takes the enrichment fields of the domestic row with the
// same name and is tagged both; unmatched global rows are tagged global.
// Domestic rows not consumed that way are appended as domestic with their own
// rank. The result is sorted by absolute revenue, highest first; equal
// revenues keep input order.
func Merge(global, domestic []registry.Row) []Enterprise {
	byName := make(map[string]int, len(domestic))
	for i, d := range domestic {
		if _, ok := byName[d.Name]; !ok {
			byName[d.Name] = i
		}
	}

	consumed := make(map[string]struct{}, len(domestic))
	out := make([]Enterprise, 0, len(global)+len(domestic))

	for _, g := range global {
		e := Enterprise{Row: g, Provenance: ProvenanceGlobal}
		if i, ok := byName[g.Name]; ok {
			d := domestic[i]
			e.Industry = d.Industry
			e.CEO = d.CEO
			e.Website = d.Website
			e.HQLocation = d.HQLocation
			e.Provenance = ProvenanceBoth
			consumed[g.Name] = struct{}{}
		}
		e.RevenueUSD = g.AbsoluteRevenue()
		out = append(out, e)
	}

	for _, d := range domestic {
		if _, ok := consumed[d.Name]; ok {
			continue
		}
		out = append(out, Enterprise{
			Row:        d,
			Provenance: ProvenanceDomestic,
			RevenueUSD: d.AbsoluteRevenue(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RevenueUSD > out[j].RevenueUSD
	})

	zap.L().Debug("enterprise: merged registries",
		zap.Int("global", len(global)),
		zap.Int("domestic", len(domestic)),
		zap.Int("both", len(consumed)),
		zap.Int("total", len(out)),
	)
	return out
}
