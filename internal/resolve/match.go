package resolve

import (
	"strings"
)

// MatchType records which pass of the cascade produced a match.
type MatchType string

const (
	MatchExact MatchType = "exact" // exact name, possibly after alias resolution
	MatchFuzzy MatchType = "fuzzy" // substring containment in either direction
)

// Match is a resolved canonical name.
type Match struct {
	Name  string
	Type  MatchType
	Alias bool // target was rewritten by the alias table
}

// Candidates is an ordered canonical-name set. Iteration order breaks ties in
// the fuzzy pass, so callers pass names in registry order.
type Candidates struct {
	names []string
	set   map[string]struct{}
}

// NewCandidates indexes names for exact lookup while keeping their order.
func NewCandidates(names []string) *Candidates {
	c := &Candidates{
		names: make([]string, 0, len(names)),
		set:   make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, dup := c.set[n]; dup {
			continue
		}
		c.set[n] = struct{}{}
		c.names = append(c.names, n)
	}
	return c
}

// Contains reports whether name is an exact candidate.
func (c *Candidates) Contains(name string) bool {
	_, ok := c.set[name]
	return ok
}

// Matcher resolves free-text names against a candidate set.
type Matcher struct {
	aliases *AliasTable
}

// NewMatcher creates a matcher over an alias table. A nil table disables the
// alias pass.
func NewMatcher(aliases *AliasTable) *Matcher {
	return &Matcher{aliases: aliases}
}

// Aliases returns the matcher's alias table.
func (m *Matcher) Aliases() *AliasTable {
	return m.aliases
}

// Match resolves target using a strict cascade; the first pass that succeeds
// wins and later passes are never consulted:
//  1. Alias resolution (rewrites target, does not match by itself)
//  2. Exact match against the candidates
//  3. First candidate, in order, that contains target or is contained by it
func (m *Matcher) Match(target string, candidates *Candidates) (Match, bool) {
	target = strings.TrimSpace(target)
	if target == "" || candidates == nil {
		return Match{}, false
	}

	name := target
	aliased := false
	if canonical, ok := m.aliases.Resolve(target); ok {
		name = canonical
		aliased = true
	}

	if candidates.Contains(name) {
		return Match{Name: name, Type: MatchExact, Alias: aliased}, true
	}

	for _, c := range candidates.names {
		if strings.Contains(name, c) || strings.Contains(c, name) {
			return Match{Name: c, Type: MatchFuzzy, Alias: aliased}, true
		}
	}

	return Match{}, false
}
