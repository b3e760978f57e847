package company

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/chain-tracker/internal/model"
)

func TestRecordPatch(t *testing.T) {
	name, p := RecordPatch(map[string]string{
		"Company Name": " Circle ",
		"url":          "https://circle.com",
		"categories":   "Stablecoins; Payments;",
		"partners":     "Visa, Mastercard",
		"focus":        "  ",
		"notes":        "ignored",
	})

	assert.Equal(t, "Circle", name)
	require.NotNil(t, p.Website)
	assert.Equal(t, "https://circle.com", *p.Website)
	assert.Nil(t, p.Focus)
	assert.Equal(t, []string{"Stablecoins", "Payments"}, p.Categories)
	assert.Equal(t, []model.Partner{{Name: "Visa"}, {Name: "Mastercard"}}, p.Partners)
}

func TestRecordPatch_NamePreferred(t *testing.T) {
	name, _ := RecordPatch(map[string]string{"company": "Circle Internet", "name": "Circle"})
	assert.Equal(t, "Circle", name)
}

func TestImport_MergesCollisions(t *testing.T) {
	dir := []model.Company{{
		ID: "company-circle", Name: "Circle", Website: "https://circle.com",
		Categories: []string{"Stablecoins"}, AddedAt: now,
	}}
	later := now.Add(time.Hour)

	out, res := Import(dir, []map[string]string{
		{"name": "Circle, Inc.", "region": "US", "categories": "payments"},
		{"name": "Ripple", "website": "https://ripple.com"},
		{"name": ""},
		{"name": "Ripple", "focus": "Cross-border"},
	}, later)

	assert.Equal(t, ImportResult{Added: 1, Merged: 2, Skipped: 1}, res)
	require.Len(t, out, 2)

	assert.Equal(t, "Circle", out[0].Name)
	assert.Equal(t, "US", out[0].Region)
	assert.Equal(t, "https://circle.com", out[0].Website)
	assert.Equal(t, []string{"Stablecoins", "payments"}, out[0].Categories)
	assert.Equal(t, later, out[0].UpdatedAt)

	assert.Equal(t, "company-ripple", out[1].ID)
	assert.Equal(t, "Cross-border", out[1].Focus)
	assert.Equal(t, later, out[1].AddedAt)

	assert.Len(t, dir, 1, "input directory untouched")
	assert.Empty(t, dir[0].Region)
}
