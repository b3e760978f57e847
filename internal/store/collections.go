package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/chain-tracker/internal/model"
)

// load decodes a collection into dst. A missing collection leaves dst at its
// zero value.
func load(ctx context.Context, s Store, collection string, dst any) error {
	data, err := s.Get(ctx, collection)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return eris.Wrapf(err, "store: decode %s", collection)
	}
	return nil
}

func save(ctx context.Context, s Store, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return eris.Wrapf(err, "store: encode %s", collection)
	}
	return s.Put(ctx, collection, data)
}

// LoadCompanies returns the directory.
func LoadCompanies(ctx context.Context, s Store) ([]model.Company, error) {
	var out []model.Company
	if err := load(ctx, s, CollectionCompanies, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveCompanies replaces the directory.
func SaveCompanies(ctx context.Context, s Store, companies []model.Company) error {
	if companies == nil {
		companies = []model.Company{}
	}
	return save(ctx, s, CollectionCompanies, companies)
}

// LoadNews returns every stored news item.
func LoadNews(ctx context.Context, s Store) ([]model.NewsItem, error) {
	var out []model.NewsItem
	if err := load(ctx, s, CollectionNews, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveNews replaces the news collection.
func SaveNews(ctx context.Context, s Store, news []model.NewsItem) error {
	if news == nil {
		news = []model.NewsItem{}
	}
	return save(ctx, s, CollectionNews, news)
}

// LoadLists returns the user's company lists.
func LoadLists(ctx context.Context, s Store) ([]model.CompanyList, error) {
	var out []model.CompanyList
	if err := load(ctx, s, CollectionLists, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveLists replaces the company lists.
func SaveLists(ctx context.Context, s Store, lists []model.CompanyList) error {
	if lists == nil {
		lists = []model.CompanyList{}
	}
	return save(ctx, s, CollectionLists, lists)
}

// LoadResearch returns research records keyed by canonical enterprise name
// (or, for older records, by global rank).
func LoadResearch(ctx context.Context, s Store) (map[string]model.ResearchRecord, error) {
	out := make(map[string]model.ResearchRecord)
	if err := load(ctx, s, CollectionResearch, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = make(map[string]model.ResearchRecord)
	}
	return out, nil
}

// SaveResearch replaces the research collection.
func SaveResearch(ctx context.Context, s Store, research map[string]model.ResearchRecord) error {
	if research == nil {
		research = map[string]model.ResearchRecord{}
	}
	return save(ctx, s, CollectionResearch, research)
}

// LastScan returns the time of the last research scan, or the zero time.
func LastScan(ctx context.Context, s Store) (time.Time, error) {
	var t time.Time
	if err := load(ctx, s, CollectionLastScan, &t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// SetLastScan records the time of a research scan.
func SetLastScan(ctx context.Context, s Store, t time.Time) error {
	return save(ctx, s, CollectionLastScan, t.UTC())
}
