// Package tracker loads the current snapshot from the store and the
// registries and runs the engine over it. Every call recomputes from scratch;
// nothing derived is cached between calls.
package tracker

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/enrich"
	"github.com/sells-group/chain-tracker/internal/enterprise"
	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/registry"
	"github.com/sells-group/chain-tracker/internal/resolve"
	"github.com/sells-group/chain-tracker/internal/store"
)

// ErrUnknownCompany is returned when a name does not resolve to a directory
// company.
var ErrUnknownCompany = errors.New("tracker: unknown company")

// Registries supplies the parsed global and domestic registries.
type Registries interface {
	Load(ctx context.Context) (global, domestic []registry.Row, err error)
}

// Service ties the store, the registries and the alias table together.
type Service struct {
	store      store.Store
	registries Registries
	matcher    *resolve.Matcher
	resolver   *company.Resolver
	now        func() time.Time
}

// New creates a Service. A nil alias table uses the built-in table.
func New(st store.Store, registries Registries, aliases *resolve.AliasTable) *Service {
	if aliases == nil {
		aliases = resolve.DefaultAliasTable()
	}
	return &Service{
		store:      st,
		registries: registries,
		matcher:    resolve.NewMatcher(aliases),
		resolver:   company.NewResolver(aliases),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot reads every input the engine consumes.
func (s *Service) Snapshot(ctx context.Context) (enterprise.Snapshot, error) {
	global, domestic, err := s.registries.Load(ctx)
	if err != nil {
		return enterprise.Snapshot{}, err
	}
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return enterprise.Snapshot{}, err
	}
	research, err := store.LoadResearch(ctx, s.store)
	if err != nil {
		return enterprise.Snapshot{}, err
	}
	news, err := store.LoadNews(ctx, s.store)
	if err != nil {
		return enterprise.Snapshot{}, err
	}
	return enterprise.Snapshot{
		Global:    global,
		Domestic:  domestic,
		Directory: dir,
		Research:  research,
		News:      news,
	}, nil
}

// Enterprises builds the unified enterprise list and applies f.
func (s *Service) Enterprises(ctx context.Context, f enterprise.Filter) ([]enterprise.Enterprise, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return enterprise.Select(enterprise.Build(snap, s.matcher), f), nil
}

// Enterprise returns the enterprise addressed by k.
func (s *Service) Enterprise(ctx context.Context, k enterprise.Key) (enterprise.Enterprise, bool, error) {
	all, err := s.Enterprises(ctx, enterprise.Filter{})
	if err != nil {
		return enterprise.Enterprise{}, false, err
	}
	e, ok := enterprise.Find(all, k)
	return e, ok, nil
}

// Directory returns the filtered directory view.
func (s *Service) Directory(ctx context.Context, f company.Filter) ([]model.Company, error) {
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return company.View(dir, f), nil
}

// Groups returns the filtered directory grouped into parents and
// subsidiaries. Parents are detected against the full directory.
func (s *Service) Groups(ctx context.Context, f company.Filter) ([]company.GroupedEntry, error) {
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return company.Group(company.View(dir, f), dir), nil
}

// Duplicates returns the names of each duplicate group without changing the
// directory.
func (s *Service) Duplicates(ctx context.Context) ([][]string, error) {
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return nil, err
	}
	groups := s.resolver.FindDuplicates(dir)
	out := make([][]string, len(groups))
	for i, g := range groups {
		for _, idx := range g {
			out[i] = append(out[i], dir[idx].Name)
		}
	}
	return out, nil
}

// Dedupe merges duplicate directory records and saves the result. Nothing is
// written when no duplicates are found.
func (s *Service) Dedupe(ctx context.Context) (company.MergeResult, error) {
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return company.MergeResult{}, err
	}
	merged, res := s.resolver.MergeDuplicates(dir)
	if res.Removed == 0 {
		return res, nil
	}
	if err := store.SaveCompanies(ctx, s.store, merged); err != nil {
		return company.MergeResult{}, eris.Wrap(err, "tracker: save deduped directory")
	}
	zap.L().Info("tracker: merged duplicates",
		zap.Int("merged", res.Merged),
		zap.Int("removed", res.Removed),
	)
	return res, nil
}

// RemoveCompany deletes the directory company whose ID derives from name.
// It reports false when no such company exists.
func (s *Service) RemoveCompany(ctx context.Context, name string) (bool, error) {
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return false, err
	}
	dir, ok := company.Remove(dir, company.NewID(name))
	if !ok {
		return false, nil
	}
	if err := store.SaveCompanies(ctx, s.store, dir); err != nil {
		return false, eris.Wrap(err, "tracker: save directory")
	}
	return true, nil
}

// Import upserts import records into the directory and saves it.
func (s *Service) Import(ctx context.Context, records []map[string]string) (company.ImportResult, error) {
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return company.ImportResult{}, err
	}
	dir, res := company.Import(dir, records, s.now())
	if res.Added+res.Merged == 0 {
		return res, nil
	}
	if err := store.SaveCompanies(ctx, s.store, dir); err != nil {
		return company.ImportResult{}, eris.Wrap(err, "tracker: save imported directory")
	}
	return res, nil
}

// ApplyEnrichment upserts successful enrichment results into the directory.
// Failed items leave their company untouched. Returns the number applied.
func (s *Service) ApplyEnrichment(ctx context.Context, results []enrich.CompanyResult) (int, error) {
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return 0, err
	}
	now := s.now()
	applied := 0
	for _, r := range results {
		if r.Err != nil {
			zap.L().Warn("tracker: enrichment failed", zap.String("company", r.Name), zap.Error(r.Err))
			continue
		}
		if r.Patch.Empty() {
			continue
		}
		if dir, _, err = company.Upsert(dir, r.Name, r.Patch, now); err != nil {
			zap.L().Warn("tracker: enrichment not applied", zap.String("company", r.Name), zap.Error(err))
			continue
		}
		applied++
	}
	if applied == 0 {
		return 0, nil
	}
	if err := store.SaveCompanies(ctx, s.store, dir); err != nil {
		return 0, eris.Wrap(err, "tracker: save enriched directory")
	}
	return applied, nil
}

// ApplyResearch merges successful research results into the research store,
// keyed by canonical enterprise name, and stamps the last scan time. Results
// are matched to enterprises by name; unknown names are skipped.
func (s *Service) ApplyResearch(ctx context.Context, enterprises []enterprise.Enterprise, results []enrich.ResearchResult) (int, error) {
	research, err := store.LoadResearch(ctx, s.store)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, r := range results {
		if r.Err != nil {
			zap.L().Warn("tracker: research failed", zap.String("enterprise", r.Name), zap.Error(r.Err))
			continue
		}
		e, ok := enterprise.FindByName(enterprises, r.Name)
		if !ok {
			continue
		}
		research = enterprise.StoreResearch(research, e, r.Record)
		applied++
	}
	if applied > 0 {
		if err := store.SaveResearch(ctx, s.store, research); err != nil {
			return 0, eris.Wrap(err, "tracker: save research")
		}
	}
	if err := store.SetLastScan(ctx, s.store, s.now()); err != nil {
		return applied, eris.Wrap(err, "tracker: stamp last scan")
	}
	return applied, nil
}

// News returns the stored news items, most recently added first.
func (s *Service) News(ctx context.Context) ([]model.NewsItem, error) {
	news, err := store.LoadNews(ctx, s.store)
	if err != nil {
		return nil, err
	}
	out := make([]model.NewsItem, 0, len(news))
	for i := len(news) - 1; i >= 0; i-- {
		out = append(out, news[i])
	}
	return out, nil
}

// AddNews appends a news item with a fresh ID.
func (s *Service) AddNews(ctx context.Context, item model.NewsItem) (model.NewsItem, error) {
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return model.NewsItem{}, eris.New("tracker: news title is required")
	}
	news, err := store.LoadNews(ctx, s.store)
	if err != nil {
		return model.NewsItem{}, err
	}
	item.ID = uuid.NewString()
	item.AddedAt = s.now()
	news = append(news, item)
	if err := store.SaveNews(ctx, s.store, news); err != nil {
		return model.NewsItem{}, eris.Wrap(err, "tracker: save news")
	}
	return item, nil
}

// Lists returns the user-curated company lists.
func (s *Service) Lists(ctx context.Context) ([]model.CompanyList, error) {
	return store.LoadLists(ctx, s.store)
}

// AddToList adds directory companies to the named list, creating the list
// when no list of that name (ignoring case) exists. Companies already on the
// list are kept once. Every name must resolve to a directory company.
func (s *Service) AddToList(ctx context.Context, listName string, companies []string) (model.CompanyList, error) {
	listName = strings.TrimSpace(listName)
	if listName == "" {
		return model.CompanyList{}, eris.New("tracker: list name is required")
	}
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return model.CompanyList{}, err
	}
	ids := make([]string, 0, len(companies))
	for _, name := range companies {
		i := company.Index(dir, company.NewID(name))
		if i < 0 {
			return model.CompanyList{}, eris.Wrapf(ErrUnknownCompany, "tracker: %q", name)
		}
		ids = append(ids, company.NewID(dir[i].Name))
	}

	lists, err := store.LoadLists(ctx, s.store)
	if err != nil {
		return model.CompanyList{}, err
	}
	pos := -1
	for i := range lists {
		if strings.EqualFold(lists[i].Name, listName) {
			pos = i
			break
		}
	}
	if pos < 0 {
		lists = append(lists, model.CompanyList{ID: uuid.NewString(), Name: listName, CreatedAt: s.now()})
		pos = len(lists) - 1
	}

	list := lists[pos]
	for _, id := range ids {
		if !slices.Contains(list.CompanyIDs, id) {
			list.CompanyIDs = append(list.CompanyIDs, id)
		}
	}
	if list.CompanyIDs == nil {
		list.CompanyIDs = []string{}
	}
	lists[pos] = list

	if err := store.SaveLists(ctx, s.store, lists); err != nil {
		return model.CompanyList{}, eris.Wrap(err, "tracker: save lists")
	}
	return list, nil
}

// Status summarizes the stored collections.
type Status struct {
	Collections []store.CollectionStat `json:"collections"`
	Companies   int                    `json:"companies"`
	News        int                    `json:"news"`
	Researched  int                    `json:"researched"`
	LastScan    *time.Time             `json:"last_scan,omitempty"`
}

// Status reports collection sizes, record counts and the last research scan.
func (s *Service) Status(ctx context.Context) (Status, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return Status{}, err
	}
	dir, err := store.LoadCompanies(ctx, s.store)
	if err != nil {
		return Status{}, err
	}
	news, err := store.LoadNews(ctx, s.store)
	if err != nil {
		return Status{}, err
	}
	research, err := store.LoadResearch(ctx, s.store)
	if err != nil {
		return Status{}, err
	}
	st := Status{
		Collections: stats,
		Companies:   len(dir),
		News:        len(news),
		Researched:  len(research),
	}
	last, err := store.LastScan(ctx, s.store)
	if err != nil {
		return Status{}, err
	}
	if !last.IsZero() {
		st.LastScan = &last
	}
	return st, nil
}
