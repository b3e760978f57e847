// Package enterprise unifies the registries into one ranked enterprise list
// and attaches directory partnerships, research and news to it.
package enterprise

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/registry"
)

// Provenance records which registries produced an enterprise.
type Provenance string

const (
	ProvenanceGlobal   Provenance = "global"
	ProvenanceDomestic Provenance = "domestic"
	ProvenanceBoth     Provenance = "both"
)

// ParseProvenance validates a provenance string.
func ParseProvenance(s string) (Provenance, error) {
	switch p := Provenance(strings.ToLower(strings.TrimSpace(s))); p {
	case ProvenanceGlobal, ProvenanceDomestic, ProvenanceBoth:
		return p, nil
	default:
		return "", eris.Errorf("enterprise: unknown provenance %q", s)
	}
}

// Key addresses an enterprise. Ranks are scoped to their registry, so a rank
// alone never identifies an enterprise.
type Key struct {
	Rank       int        `json:"rank"`
	Provenance Provenance `json:"provenance"`
}

func (k Key) String() string {
	return string(k.Provenance) + "/" + strconv.Itoa(k.Rank)
}

// ParseKey builds a Key from its string parts, e.g. "global" and "7".
func ParseKey(provenance, rank string) (Key, error) {
	p, err := ParseProvenance(provenance)
	if err != nil {
		return Key{}, err
	}
	r, err := strconv.Atoi(strings.TrimSpace(rank))
	if err != nil {
		return Key{}, eris.Wrapf(err, "enterprise: parse rank %q", rank)
	}
	return Key{Rank: r, Provenance: p}, nil
}

// Status is the activity classification of an enterprise.
type Status string

const (
	StatusStrategic  Status = "Strategic"
	StatusExploring  Status = "Exploring"
	StatusEvaluating Status = "Evaluating"
)

// Partnership links an enterprise to the directory company that reported it.
type Partnership struct {
	DirectoryCompany string `json:"directory_company"`
	Description      string `json:"description,omitempty"`
}

// Enterprise is a unified registry entry with its computed links. It is
// derived from the current inputs on every build and never persisted.
type Enterprise struct {
	registry.Row
	Provenance   Provenance            `json:"provenance"`
	RevenueUSD   float64               `json:"revenue_usd"`
	Partnerships []Partnership         `json:"partnerships"`
	Research     *model.ResearchRecord `json:"research,omitempty"`
	News         []model.NewsItem      `json:"news,omitempty"`
	Status       Status                `json:"status"`
	LogoDomain   string                `json:"logo_domain,omitempty"`
}

// Key returns the enterprise's compound address.
func (e Enterprise) Key() Key {
	return Key{Rank: e.Rank, Provenance: e.Provenance}
}

// Find returns the enterprise with the given key.
func Find(es []Enterprise, k Key) (Enterprise, bool) {
	for _, e := range es {
		if e.Rank == k.Rank && e.Provenance == k.Provenance {
			return e, true
		}
	}
	return Enterprise{}, false
}

// FindByName returns the enterprise with the given canonical name.
func FindByName(es []Enterprise, name string) (Enterprise, bool) {
	for _, e := range es {
		if e.Name == name {
			return e, true
		}
	}
	return Enterprise{}, false
}

// Names returns the canonical names in list order.
func Names(es []Enterprise) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

// Filter selects enterprises by status and provenance. Zero values match all.
type Filter struct {
	Status     Status
	Provenance Provenance
	Limit      int
}

// Select applies f, keeping list order.
func Select(es []Enterprise, f Filter) []Enterprise {
	out := make([]Enterprise, 0, len(es))
	for _, e := range es {
		if f.Status != "" && !strings.EqualFold(string(e.Status), string(f.Status)) {
			continue
		}
		if f.Provenance != "" && e.Provenance != f.Provenance {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}
