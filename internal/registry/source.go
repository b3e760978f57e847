package registry

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// TextSource reads the full text behind a registry location.
type TextSource interface {
	ReadText(ctx context.Context, source string) (string, error)
}

// Loader reads both registries from their configured sources and parses them
// through a shared Cache, so unchanged registry text is parsed once.
type Loader struct {
	src      TextSource
	cache    *Cache
	global   string
	domestic string
}

// NewLoader creates a Loader. An empty location yields an empty registry.
func NewLoader(src TextSource, cache *Cache, global, domestic string) *Loader {
	return &Loader{src: src, cache: cache, global: global, domestic: domestic}
}

// Load returns the global and domestic rows.
func (l *Loader) Load(ctx context.Context) (global, domestic []Row, err error) {
	if global, err = l.load(ctx, KindGlobal, l.global); err != nil {
		return nil, nil, err
	}
	if domestic, err = l.load(ctx, KindDomestic, l.domestic); err != nil {
		return nil, nil, err
	}
	return global, domestic, nil
}

func (l *Loader) load(ctx context.Context, kind Kind, location string) ([]Row, error) {
	if location == "" {
		zap.L().Debug("registry: no source configured", zap.String("kind", string(kind)))
		return nil, nil
	}
	text, err := l.src.ReadText(ctx, location)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: load %s registry", kind)
	}
	rows := l.cache.Parse(kind, text)
	zap.L().Debug("registry: loaded",
		zap.String("kind", string(kind)),
		zap.Int("rows", len(rows)),
		zap.Int("cached", l.cache.Len()),
	)
	return rows, nil
}
