package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/chain-tracker/internal/model"
)

func companies(names ...string) []model.Company {
	out := make([]model.Company, len(names))
	for i, n := range names {
		out[i] = model.Company{ID: NewID(n), Name: n}
	}
	return out
}

func entryNames(entries []GroupedEntry) map[string][]string {
	out := make(map[string][]string, len(entries))
	for _, e := range entries {
		out[e.Parent.Name] = names(e.Subsidiaries)
	}
	return out
}

func TestGroup_PrefixDetection(t *testing.T) {
	view := companies("PwC", "PwC India")
	got := Group(view, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "PwC", got[0].Parent.Name)
	assert.Equal(t, []string{"PwC India"}, names(got[0].Subsidiaries))
}

func TestGroup_CorporateUnitNotGrouped(t *testing.T) {
	view := companies("Coinbase", "Coinbase Ventures", "Animoca Asset Management Asia", "Animoca")
	got := Group(view, nil)

	require.Len(t, got, 4)
	for _, e := range got {
		assert.Empty(t, e.Subsidiaries, e.Parent.Name)
	}
}

func TestGroup_MarkerOnlyAsWholeWord(t *testing.T) {
	// "Capitalize" is not the marker "Capital".
	view := companies("Acme", "Acme Capitalize")
	got := Group(view, nil)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Acme Capitalize"}, names(got[0].Subsidiaries))
}

func TestGroup_OrphanSurfacedStandalone(t *testing.T) {
	directory := companies("PwC", "PwC India", "Deloitte")
	view := companies("PwC India", "Deloitte") // PwC filtered out

	got := Group(view, directory)
	require.Len(t, got, 2)
	assert.Equal(t, "PwC India", got[0].Parent.Name)
	assert.Empty(t, got[0].Subsidiaries)
	assert.Equal(t, "Deloitte", got[1].Parent.Name)
}

func TestGroup_ExplicitParent(t *testing.T) {
	view := []model.Company{
		{Name: "Binance"},
		{Name: "BAM Trading", ParentCompany: "Binance"},
		{Name: "Coinbase Ventures", ParentCompany: "Coinbase, Inc."},
		{Name: "Coinbase"},
	}
	got := entryNames(Group(view, nil))

	assert.Equal(t, []string{"BAM Trading"}, got["Binance"])
	// Explicit parent resolved through the ID; overrides the unit marker.
	assert.Equal(t, []string{"Coinbase Ventures"}, got["Coinbase"])
	assert.NotContains(t, got, "BAM Trading")
}

func TestGroup_ExplicitUnknownParentStandalone(t *testing.T) {
	view := []model.Company{{Name: "Local Office", ParentCompany: "Not In Directory"}}
	got := Group(view, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Local Office", got[0].Parent.Name)
}

func TestGroup_LongestPrefixAndChainCollapse(t *testing.T) {
	view := companies("KPMG", "KPMG India", "KPMG India Mumbai")
	got := Group(view, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "KPMG", got[0].Parent.Name)
	assert.Equal(t, []string{"KPMG India", "KPMG India Mumbai"}, names(got[0].Subsidiaries))
}

func TestGroup_ChainSkipsMissingMiddle(t *testing.T) {
	directory := companies("KPMG", "KPMG India", "KPMG India Mumbai")
	view := companies("KPMG India Mumbai", "KPMG")

	got := Group(view, directory)
	require.Len(t, got, 1)
	assert.Equal(t, "KPMG", got[0].Parent.Name)
	assert.Equal(t, []string{"KPMG India Mumbai"}, names(got[0].Subsidiaries))
}

func TestGroup_ParentCycleStandsAlone(t *testing.T) {
	view := []model.Company{
		{Name: "Alpha", ParentCompany: "Beta"},
		{Name: "Beta", ParentCompany: "Alpha"},
	}
	got := Group(view, nil)
	require.Len(t, got, 2)
	assert.Empty(t, got[0].Subsidiaries)
	assert.Empty(t, got[1].Subsidiaries)
}

func TestGroup_FollowsViewOrder(t *testing.T) {
	view := companies("EY Germany", "Aave", "EY", "EY Brazil")
	got := Group(view, nil)

	require.Len(t, got, 2)
	assert.Equal(t, "Aave", got[0].Parent.Name)
	assert.Equal(t, "EY", got[1].Parent.Name)
	assert.Equal(t, []string{"EY Germany", "EY Brazil"}, names(got[1].Subsidiaries))
}

func TestGroup_Idempotent(t *testing.T) {
	view := companies("PwC", "PwC India", "Coinbase", "Coinbase Ventures")
	assert.Equal(t, Group(view, nil), Group(view, nil))
}

func TestGroup_EveryCompanyAppearsOnce(t *testing.T) {
	view := companies("PwC", "PwC India", "PwC India Labs", "Coinbase", "Coinbase Ventures", "Ledger")
	got := Group(view, nil)

	seen := 0
	for _, e := range got {
		seen += 1 + len(e.Subsidiaries)
	}
	assert.Equal(t, len(view), seen)
}

func TestGrouper_ParentOf(t *testing.T) {
	g := newGrouper(companies("PwC", "Coinbase"))
	assert.Equal(t, "PwC", g.parentOf(model.Company{Name: "PwC India"}))
	assert.Equal(t, "", g.parentOf(model.Company{Name: "Coinbase Ventures"}))
	assert.Equal(t, "", g.parentOf(model.Company{Name: "PwC"}))
}

func TestIsCorporateUnit(t *testing.T) {
	assert.True(t, isCorporateUnit("Ventures"))
	assert.True(t, isCorporateUnit("Asset Management"))
	assert.True(t, isCorporateUnit("Asset Management Asia"))
	assert.True(t, isCorporateUnit("labs"))
	assert.False(t, isCorporateUnit("India"))
	assert.False(t, isCorporateUnit("Asset"))
	assert.False(t, isCorporateUnit("Fundamentals"))
}
