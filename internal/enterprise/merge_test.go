package enterprise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/chain-tracker/internal/registry"
)

const globalCSV = `Rank,Name,Revenues ($M),Revenue Change,Profits ($M),Employees,Country
1,Walmart,"$648,125",6.0%,"$15,511","2,100,000",USA
2,Saudi Aramco,"$494,890",-17.8%,"$120,699","73,311",Saudi Arabia
3,"Berkshire Hathaway, Inc.","$364,482",20.7%,"$96,223","396,500",USA
22,Alphabet,"$307,394",8.7%,"$73,795","182,502",USA
`

const domesticCSV = `Rank,Name,Revenue,Employees,Industry,City,State,CEO,Website
1,Walmart,"$648,125,000,000","2,100,000",General Merchandisers,Bentonville,AR,Doug McMillon,https://www.walmart.com
12,JPMorgan Chase,"$239,425,000,000","309,926",Commercial Banks,New York,NY,Jamie Dimon,https://www.jpmorganchase.com
15,Visa,"$32,653,000,000","28,800",Financial Data Services,San Francisco,CA,Ryan McInerney,https://www.visa.com
`

func TestMerge_ProvenanceAndEnrichment(t *testing.T) {
	es := Merge(registry.ParseGlobal(globalCSV), registry.ParseDomestic(domesticCSV))
	require.Len(t, es, 6)

	walmart, ok := FindByName(es, "Walmart")
	require.True(t, ok)
	assert.Equal(t, ProvenanceBoth, walmart.Provenance)
	assert.Equal(t, 1, walmart.Rank)
	assert.Equal(t, "General Merchandisers", walmart.Industry)
	assert.Equal(t, "Doug McMillon", walmart.CEO)
	assert.Equal(t, "https://www.walmart.com", walmart.Website)
	assert.Equal(t, "Bentonville, AR", walmart.HQLocation)
	assert.Equal(t, "USA", walmart.Country)

	aramco, ok := FindByName(es, "Saudi Aramco")
	require.True(t, ok)
	assert.Equal(t, ProvenanceGlobal, aramco.Provenance)
	assert.Empty(t, aramco.CEO)

	jpm, ok := FindByName(es, "JPMorgan Chase")
	require.True(t, ok)
	assert.Equal(t, ProvenanceDomestic, jpm.Provenance)
	assert.Equal(t, 12, jpm.Rank, "domestic rows keep their own rank")
}

func TestMerge_SortedByAbsoluteRevenue(t *testing.T) {
	es := Merge(registry.ParseGlobal(globalCSV), registry.ParseDomestic(domesticCSV))
	assert.Equal(t, []string{
		"Walmart",
		"Saudi Aramco",
		"Berkshire Hathaway, Inc.",
		"Alphabet",
		"JPMorgan Chase",
		"Visa",
	}, Names(es))
	assert.InDelta(t, 648_125e6, es[0].RevenueUSD, 1)
}

func TestMerge_GlobalRevenueScaledBeforeComparison(t *testing.T) {
	global := []registry.Row{
		{Kind: registry.KindGlobal, Rank: 9, Name: "Small Global", Revenue: "$300"},
		{Kind: registry.KindGlobal, Rank: 7, Name: "Big Global", Revenue: "$500"},
	}
	domestic := []registry.Row{
		{Kind: registry.KindDomestic, Rank: 7, Name: "Domestic Co", Revenue: "$400,000,000"},
	}

	es := Merge(global, domestic)
	assert.Equal(t, []string{"Big Global", "Domestic Co", "Small Global"}, Names(es))
}

func TestMerge_RankSpacesStayDistinct(t *testing.T) {
	global := []registry.Row{{Kind: registry.KindGlobal, Rank: 7, Name: "Toyota Motor", Revenue: "$274,491"}}
	domestic := []registry.Row{{Kind: registry.KindDomestic, Rank: 7, Name: "Berkshire Hathaway", Revenue: "$302,089,000,000"}}

	es := Merge(global, domestic)
	require.Len(t, es, 2)

	g, ok := Find(es, Key{Rank: 7, Provenance: ProvenanceGlobal})
	require.True(t, ok)
	assert.Equal(t, "Toyota Motor", g.Name)

	d, ok := Find(es, Key{Rank: 7, Provenance: ProvenanceDomestic})
	require.True(t, ok)
	assert.Equal(t, "Berkshire Hathaway", d.Name)

	_, ok = Find(es, Key{Rank: 7, Provenance: ProvenanceBoth})
	assert.False(t, ok)
}

func TestMerge_StableOnEqualRevenue(t *testing.T) {
	global := []registry.Row{
		{Kind: registry.KindGlobal, Rank: 1, Name: "A", Revenue: "x"},
		{Kind: registry.KindGlobal, Rank: 2, Name: "B", Revenue: ""},
	}
	domestic := []registry.Row{{Kind: registry.KindDomestic, Rank: 1, Name: "C"}}
	assert.Equal(t, []string{"A", "B", "C"}, Names(Merge(global, domestic)))
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}
