// Package enrich asks Claude for company profiles and enterprise research and
// turns the replies into directory patches and research records.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/pkg/anthropic"
)

const companySystemPrompt = `You maintain a directory of blockchain and digital-asset companies.
Given a company name, reply with a single JSON object and nothing else:
{"description": "", "website": "", "region": "", "focus": "",
 "parent_company": "", "categories": [""],
 "partners": [{"name": "", "description": "", "date": "YYYY-MM", "source_url": ""}]}
List only partnerships with large enterprises that are publicly documented.
Use the enterprise's common name for each partner. Leave unknown fields empty.`

const researchSystemPrompt = `You track blockchain and digital-asset activity at large enterprises.
Given an enterprise name, reply with a single JSON object and nothing else:
{"summary": "", "initiatives": [{"title": "", "date": "YYYY-MM", "description": "", "source_url": ""}]}
Include only initiatives with a public source. Use short, stable titles.
Reply with an empty initiatives list when nothing is documented.`

// Options configures an Enricher.
type Options struct {
	Model      string
	MaxTokens  int64
	RatePerSec float64
}

// Enricher calls the Anthropic Messages API, paced by a shared rate limiter.
type Enricher struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
	now       func() time.Time
}

// New creates an Enricher. A non-positive rate disables pacing.
func New(client anthropic.Client, opts Options) *Enricher {
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Enricher{
		client:    client,
		model:     opts.Model,
		maxTokens: maxTokens,
		limiter:   rate.NewLimiter(limit, 1),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// EnrichCompany returns a partial profile for a directory company. Empty or
// partial replies yield a sparse patch, not an error.
func (e *Enricher) EnrichCompany(ctx context.Context, name string) (company.Patch, error) {
	text, err := e.ask(ctx, "enrich", companySystemPrompt, fmt.Sprintf("Company: %s", name))
	if err != nil {
		return company.Patch{}, eris.Wrapf(err, "enrich: company %q", name)
	}
	p, err := parseCompany(text)
	if err != nil {
		return company.Patch{}, eris.Wrapf(err, "enrich: company %q", name)
	}
	return p, nil
}

// ResearchEnterprise returns the documented blockchain activity of an
// enterprise, stamped with the current time.
func (e *Enricher) ResearchEnterprise(ctx context.Context, name string) (model.ResearchRecord, error) {
	text, err := e.ask(ctx, "research", researchSystemPrompt, fmt.Sprintf("Enterprise: %s", name))
	if err != nil {
		return model.ResearchRecord{}, eris.Wrapf(err, "enrich: research %q", name)
	}
	rec, err := parseResearch(text, e.now())
	if err != nil {
		return model.ResearchRecord{}, eris.Wrapf(err, "enrich: research %q", name)
	}
	return rec, nil
}

func (e *Enricher) ask(ctx context.Context, phase, system, prompt string) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "rate limit wait")
	}

	reply, err := e.client.Complete(ctx, anthropic.Prompt{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System:    system,
		User:      prompt,
	})
	if err != nil {
		return "", err
	}
	reply.Usage.Log(e.model, phase)

	if reply.Truncated() {
		zap.L().Warn("enrich: reply truncated, repairing",
			zap.String("phase", phase),
			zap.String("prompt", prompt),
		)
	}
	return strings.TrimSpace(reply.Text), nil
}
