package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/chain-tracker/internal/enrich"
	"github.com/sells-group/chain-tracker/internal/fetcher"
	"github.com/sells-group/chain-tracker/internal/registry"
	"github.com/sells-group/chain-tracker/internal/resolve"
	"github.com/sells-group/chain-tracker/internal/store"
	"github.com/sells-group/chain-tracker/internal/tracker"
	anthropicpkg "github.com/sells-group/chain-tracker/pkg/anthropic"
)

// trackerEnv holds the store and the service every command works through.
type trackerEnv struct {
	Store   store.Store
	Tracker *tracker.Service
}

// Close releases resources held by the environment.
func (te *trackerEnv) Close() {
	if te.Store != nil {
		_ = te.Store.Close()
	}
}

// initEnv validates the config for mode, opens and migrates the store, and
// wires the registry loader and alias table. Callers should defer env.Close().
func initEnv(ctx context.Context, mode string) (*trackerEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	aliases, err := resolve.LoadAliasTable(cfg.Registry.AliasFile)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	loader := registry.NewLoader(
		fetcher.DefaultOpener(),
		registry.NewCache(cfg.Registry.CacheTTL()),
		cfg.Registry.GlobalSource,
		cfg.Registry.DomesticSource,
	)

	zap.L().Debug("environment ready",
		zap.String("driver", cfg.Store.Driver),
		zap.Int("aliases", aliases.Len()),
	)

	return &trackerEnv{
		Store:   st,
		Tracker: tracker.New(st, loader, aliases),
	}, nil
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initEnricher() *enrich.Enricher {
	return enrich.New(anthropicpkg.NewClient(cfg.Anthropic.Key), enrich.Options{
		Model:      cfg.Anthropic.Model,
		MaxTokens:  cfg.Anthropic.MaxTokens,
		RatePerSec: cfg.Research.RatePerSec,
	})
}
