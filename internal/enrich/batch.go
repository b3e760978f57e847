package enrich

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/model"
)

// CompanyResult is the outcome of enriching one company.
type CompanyResult struct {
	Name  string
	Patch company.Patch
	Err   error
}

// ResearchResult is the outcome of researching one enterprise.
type ResearchResult struct {
	Name   string
	Record model.ResearchRecord
	Err    error
}

// EnrichCompanies enriches names with at most concurrency calls in flight.
// Per-item failures are reported in the results and do not stop the batch;
// only context cancellation does. Results are in input order.
func (e *Enricher) EnrichCompanies(ctx context.Context, names []string, concurrency int) ([]CompanyResult, error) {
	results := make([]CompanyResult, len(names))
	err := run(ctx, len(names), concurrency, func(ctx context.Context, i int) {
		p, err := e.EnrichCompany(ctx, names[i])
		results[i] = CompanyResult{Name: names[i], Patch: p, Err: err}
	})
	return results, err
}

// ResearchEnterprises researches names the same way EnrichCompanies does.
func (e *Enricher) ResearchEnterprises(ctx context.Context, names []string, concurrency int) ([]ResearchResult, error) {
	results := make([]ResearchResult, len(names))
	err := run(ctx, len(names), concurrency, func(ctx context.Context, i int) {
		rec, err := e.ResearchEnterprise(ctx, names[i])
		results[i] = ResearchResult{Name: names[i], Record: rec, Err: err}
	})
	return results, err
}

func run(ctx context.Context, n, concurrency int, fn func(ctx context.Context, i int)) error {
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := 0; i < n; i++ {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			fn(gCtx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		zap.L().Warn("enrich: batch interrupted", zap.Error(err))
		return err
	}
	return nil
}
