package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/enterprise"
	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/registry"
	"github.com/sells-group/chain-tracker/internal/store"
	"github.com/sells-group/chain-tracker/internal/tracker"
)

const globalCSV = `Rank,Name,Revenues ($M),Revenue Change,Profits ($M),Employees,Country
1,Walmart,"$648,125",6.0%,"$15,511","2,100,000",USA
22,Alphabet,"$307,394",8.7%,"$73,795","182,502",USA
`

const domesticCSV = `Rank,Name,Revenue,Employees,Industry,City,State,CEO,Website
1,Walmart,"$648,125,000,000","2,100,000",General Merchandisers,Bentonville,AR,Doug McMillon,https://www.walmart.com
15,Visa,"$32,653,000,000","28,800",Financial Data Services,San Francisco,CA,Ryan McInerney,https://www.visa.com
`

type staticRegistries struct{}

func (staticRegistries) Load(context.Context) ([]registry.Row, []registry.Row, error) {
	return registry.ParseGlobal(globalCSV), registry.ParseDomestic(domesticCSV), nil
}

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	added := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveCompanies(context.Background(), st, []model.Company{
		{ID: "company-coinbase", Name: "Coinbase", Region: "US", AddedAt: added,
			Partners: []model.Partner{{Name: "Google", Description: "cloud payments"}}},
		{ID: "company-coinbaseventures", Name: "Coinbase Ventures", Region: "US", AddedAt: added},
		{ID: "company-pwc", Name: "PwC", Region: "Global", AddedAt: added},
		{ID: "company-pwcindia", Name: "PwC India", Region: "Asia", AddedAt: added},
		{ID: "company-circle", Name: "Circle", AddedAt: added},
		{ID: "company-circle", Name: "Circle Inc", AddedAt: added.Add(time.Hour)},
	}))
	require.NoError(t, store.SaveNews(context.Background(), st, []model.NewsItem{
		{ID: "n1", Title: "Walmart files crypto patent"},
	}))

	svc := tracker.New(st, staticRegistries{}, nil)
	ts := httptest.NewServer(New(svc, nil).Routes())
	t.Cleanup(ts.Close)
	return ts, st
}

func getJSON(t *testing.T, url string, dst any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, ts.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestListEnterprises(t *testing.T) {
	ts, _ := newTestServer(t)

	var all []enterprise.Enterprise
	resp := getJSON(t, ts.URL+"/api/v1/enterprises", &all)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Walmart", "Alphabet", "Visa"}, enterprise.Names(all))

	var strategic []enterprise.Enterprise
	getJSON(t, ts.URL+"/api/v1/enterprises?status=Strategic", &strategic)
	require.Len(t, strategic, 1)
	assert.Equal(t, "Alphabet", strategic[0].Name)
	assert.Equal(t, "google.com", strategic[0].LogoDomain)

	var domestic []enterprise.Enterprise
	getJSON(t, ts.URL+"/api/v1/enterprises?provenance=domestic", &domestic)
	assert.Equal(t, []string{"Visa"}, enterprise.Names(domestic))

	var global []enterprise.Enterprise
	getJSON(t, ts.URL+"/api/v1/enterprises?provenance=global", &global)
	assert.Equal(t, []string{"Alphabet"}, enterprise.Names(global), "global-only; Walmart is in both")

	resp = getJSON(t, ts.URL+"/api/v1/enterprises?provenance=moon", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = getJSON(t, ts.URL+"/api/v1/enterprises?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEnterprise(t *testing.T) {
	ts, _ := newTestServer(t)

	var walmart enterprise.Enterprise
	resp := getJSON(t, ts.URL+"/api/v1/enterprises/both/1", &walmart)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Walmart", walmart.Name)
	assert.Equal(t, enterprise.StatusExploring, walmart.Status)
	assert.Len(t, walmart.News, 1)

	resp = getJSON(t, ts.URL+"/api/v1/enterprises/global/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "rank is scoped to provenance")

	resp = getJSON(t, ts.URL+"/api/v1/enterprises/global/first", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDirectoryGroups(t *testing.T) {
	ts, _ := newTestServer(t)

	var groups []company.GroupedEntry
	resp := getJSON(t, ts.URL+"/api/v1/directory/groups", &groups)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	byParent := make(map[string][]string)
	for _, g := range groups {
		var subs []string
		for _, s := range g.Subsidiaries {
			subs = append(subs, s.Name)
		}
		byParent[g.Parent.Name] = subs
	}
	assert.Equal(t, []string{"PwC India"}, byParent["PwC"])
	assert.Contains(t, byParent, "Coinbase Ventures")
	assert.Empty(t, byParent["Coinbase"])

	var asia []company.GroupedEntry
	getJSON(t, ts.URL+"/api/v1/directory/groups?region=Asia", &asia)
	require.Len(t, asia, 1)
	assert.Equal(t, "PwC India", asia[0].Parent.Name)

	var dir []model.Company
	getJSON(t, ts.URL+"/api/v1/directory?q=coin&sort=name", &dir)
	require.Len(t, dir, 2)
	assert.Equal(t, "Coinbase", dir[0].Name)
}

func TestDedupe(t *testing.T) {
	ts, st := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/directory/dedupe", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res company.MergeResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, company.MergeResult{Merged: 1, Removed: 1}, res)

	dir, err := store.LoadCompanies(context.Background(), st)
	require.NoError(t, err)
	assert.Len(t, dir, 5)
}

func TestNewsListsAndStatus(t *testing.T) {
	ts, _ := newTestServer(t)

	var news []model.NewsItem
	getJSON(t, ts.URL+"/api/v1/news", &news)
	require.Len(t, news, 1)

	var lists []model.CompanyList
	resp := getJSON(t, ts.URL+"/api/v1/lists", &lists)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, lists)

	var st tracker.Status
	getJSON(t, ts.URL+"/api/v1/status", &st)
	assert.Equal(t, 6, st.Companies)
	assert.Equal(t, 1, st.News)
}

func TestAddToList(t *testing.T) {
	ts, _ := newTestServer(t)

	post := func(body string) *http.Response {
		resp, err := http.Post(ts.URL+"/api/v1/lists", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() }) //nolint:errcheck
		return resp
	}

	resp := post(`{"name":"Watchlist","companies":["Coinbase","PwC India"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list model.CompanyList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, []string{"company-coinbase", "company-pwcindia"}, list.CompanyIDs)

	assert.Equal(t, http.StatusBadRequest, post(`{"name":"Watchlist","companies":["Kraken"]}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, post(`{"companies":["Coinbase"]}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, post(`not json`).StatusCode)

	var lists []model.CompanyList
	getJSON(t, ts.URL+"/api/v1/lists", &lists)
	require.Len(t, lists, 1)
	assert.Equal(t, "Watchlist", lists[0].Name)
}

func TestCORS(t *testing.T) {
	svc := tracker.New(nil, staticRegistries{}, nil)
	ts := httptest.NewServer(New(svc, []string{"https://tracker.example.com"}).Routes())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/news", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://tracker.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, "https://tracker.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

type failingTracker struct{ Tracker }

func (failingTracker) Enterprises(context.Context, enterprise.Filter) ([]enterprise.Enterprise, error) {
	return nil, errors.New("registry offline")
}

func TestInternalErrorHidden(t *testing.T) {
	ts := httptest.NewServer(New(failingTracker{}, nil).Routes())
	defer ts.Close()

	var body errorResponse
	resp := getJSON(t, ts.URL+"/api/v1/enterprises", &body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", body.Error)
}
