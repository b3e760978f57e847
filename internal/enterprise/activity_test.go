package enterprise

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/registry"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		e    Enterprise
		want Status
	}{
		{"nothing", Enterprise{}, StatusEvaluating},
		{"empty research", Enterprise{Research: &model.ResearchRecord{Summary: "none"}}, StatusEvaluating},
		{"news only", Enterprise{News: []model.NewsItem{{Title: "x"}}}, StatusExploring},
		{"initiative only", Enterprise{Research: &model.ResearchRecord{Initiatives: []model.Initiative{{Title: "Pilot"}}}}, StatusExploring},
		{"partnership wins", Enterprise{
			Partnerships: []Partnership{{DirectoryCompany: "Circle"}},
			News:         []model.NewsItem{{Title: "x"}},
		}, StatusStrategic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.e))
		})
	}
}

func titles(r model.ResearchRecord) []string {
	out := make([]string, len(r.Initiatives))
	for i, in := range r.Initiatives {
		out[i] = in.Title
	}
	return out
}

func TestMergeResearch_NewFirstOldSurvivors(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.AddDate(0, 3, 0)

	prev := &model.ResearchRecord{
		Summary:     "old summary",
		Initiatives: []model.Initiative{{Title: "Pilot A"}},
		LastUpdated: t1,
	}
	fresh := model.ResearchRecord{
		Initiatives: []model.Initiative{{Title: "Pilot B"}},
		LastUpdated: t2,
	}

	got := MergeResearch(prev, fresh)
	assert.Equal(t, []string{"Pilot B", "Pilot A"}, titles(got))
	assert.Equal(t, "old summary", got.Summary)
	assert.Equal(t, t2, got.LastUpdated)
}

func TestMergeResearch_FreshWinsOnTitle(t *testing.T) {
	prev := &model.ResearchRecord{Initiatives: []model.Initiative{
		{Title: "Tokenized deposits", Description: "stale"},
		{Title: "Pilot A"},
	}}
	fresh := model.ResearchRecord{
		Summary:     "new summary",
		Initiatives: []model.Initiative{{Title: "Tokenized deposits", Description: "current"}},
	}

	got := MergeResearch(prev, fresh)
	require.Len(t, got.Initiatives, 2)
	assert.Equal(t, "current", got.Initiatives[0].Description)
	assert.Equal(t, "Pilot A", got.Initiatives[1].Title)
	assert.Equal(t, "new summary", got.Summary)
}

func TestMergeResearch_NoPrevious(t *testing.T) {
	fresh := model.ResearchRecord{Summary: "s", Initiatives: []model.Initiative{{Title: "x"}}}
	assert.Equal(t, fresh, MergeResearch(nil, fresh))
}

func TestResearchFor_RankFallback(t *testing.T) {
	research := map[string]model.ResearchRecord{
		"22":   {Summary: "legacy by rank"},
		"Visa": {Summary: "by name"},
	}

	global := Enterprise{Row: registry.Row{Rank: 22, Name: "Alphabet"}, Provenance: ProvenanceGlobal}
	r, ok := ResearchFor(research, global)
	require.True(t, ok)
	assert.Equal(t, "legacy by rank", r.Summary)

	domestic := Enterprise{Row: registry.Row{Rank: 22, Name: "Someone"}, Provenance: ProvenanceDomestic}
	_, ok = ResearchFor(research, domestic)
	assert.False(t, ok, "rank fallback only applies to global ranks")

	visa := Enterprise{Row: registry.Row{Rank: 22, Name: "Visa"}, Provenance: ProvenanceGlobal}
	r, ok = ResearchFor(research, visa)
	require.True(t, ok)
	assert.Equal(t, "by name", r.Summary)
}

func TestStoreResearch_MergesLegacyRecord(t *testing.T) {
	research := map[string]model.ResearchRecord{
		"22": {Initiatives: []model.Initiative{{Title: "Pilot A"}}},
	}
	e := Enterprise{Row: registry.Row{Rank: 22, Name: "Alphabet"}, Provenance: ProvenanceBoth}

	out := StoreResearch(research, e, model.ResearchRecord{Initiatives: []model.Initiative{{Title: "Pilot B"}}})
	assert.Equal(t, []string{"Pilot B", "Pilot A"}, titles(out["Alphabet"]))
	assert.Contains(t, out, "22")
	assert.NotContains(t, research, "Alphabet", "input map untouched")
}

func TestNewsFor(t *testing.T) {
	news := []model.NewsItem{
		{ID: "1", Title: "Visa expands USDC settlement to Solana"},
		{ID: "2", Title: "Stablecoin roundup", RelatedCompanies: []string{"Circle", "visa"}},
		{ID: "3", Title: "Mastercard launches crypto card"},
		{ID: "4", Title: ""},
		{ID: "5", Title: "Vis"},
	}

	got := NewsFor("Visa", news)
	ids := make([]string, len(got))
	for i, n := range got {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"1", "2", "5"}, ids)

	assert.Empty(t, NewsFor("", news))
}
