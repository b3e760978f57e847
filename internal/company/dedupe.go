package company

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/resolve"
)

// MergeResult reports a duplicate merge.
type MergeResult struct {
	Merged  int `json:"merged"`  // duplicate groups collapsed
	Removed int `json:"removed"` // records removed
}

// Resolver finds and merges directory records that denote the same company.
type Resolver struct {
	aliases *resolve.AliasTable
}

// NewResolver creates a duplicate resolver. A nil alias table disables the
// alias pass.
func NewResolver(aliases *resolve.AliasTable) *Resolver {
	return &Resolver{aliases: aliases}
}

// FindDuplicates groups directory indexes that denote the same company.
// Records are linked when any pass agrees, and groups are the transitive
// closure:
//  1. ID collision, with stored IDs and IDs derived from names compared in
//     one namespace
//  2. Same canonical name after alias resolution
//  3. Same normalized name (legal suffix, punctuation, case, diacritics)
//
// Name containment is not a pass: "PwC India" contains "PwC" but is its
// subsidiary (see Group), not a duplicate.
//
// Only groups with two or more members are returned, ordered by their first
// member; members are in directory order.
func (r *Resolver) FindDuplicates(dir []model.Company) [][]int {
	uf := newUnionFind(len(dir))
	owner := make(map[string]int, len(dir)*4)

	link := func(key string, i int) {
		if j, ok := owner[key]; ok {
			uf.union(j, i)
			return
		}
		owner[key] = i
	}

	for i, c := range dir {
		name := strings.TrimSpace(c.Name)
		if c.ID != "" {
			link("id:"+c.ID, i)
		}
		if name == "" {
			continue
		}
		link("id:"+NewID(name), i)
		link("canonical:"+r.aliases.Canonical(name), i)
		if norm := resolve.NormalizeName(name); norm != "" {
			link("normalized:"+norm, i)
		}
	}

	members := make(map[int][]int)
	var roots []int
	for i := range dir {
		root := uf.find(i)
		if _, ok := members[root]; !ok {
			roots = append(roots, root)
		}
		members[root] = append(members[root], i)
	}

	var groups [][]int
	for _, root := range roots {
		if g := members[root]; len(g) > 1 {
			groups = append(groups, g)
		}
	}
	return groups
}

// MergeDuplicates collapses every duplicate group into one surviving record
// and returns the new directory. The survivor is the earliest-added member
// (directory order breaks ties) and keeps its name; its ID is re-derived
// from that name. Running it on an
// already deduplicated directory returns it unchanged with a zero result.
func (r *Resolver) MergeDuplicates(dir []model.Company) ([]model.Company, MergeResult) {
	groups := r.FindDuplicates(dir)
	if len(groups) == 0 {
		return dir, MergeResult{}
	}

	replace := make(map[int]model.Company, len(groups))
	drop := make(map[int]struct{})
	var res MergeResult

	for _, g := range groups {
		survivor := pickSurvivor(dir, g)
		ordered := make([]model.Company, 0, len(g))
		ordered = append(ordered, dir[survivor])
		for _, i := range g {
			if i != survivor {
				ordered = append(ordered, dir[i])
				drop[i] = struct{}{}
			}
		}
		replace[survivor] = mergeRecords(ordered)

		zap.L().Info("dedupe: merged duplicate group",
			zap.String("survivor", dir[survivor].Name),
			zap.Int("members", len(g)),
		)
		res.Merged++
		res.Removed += len(g) - 1
	}

	out := make([]model.Company, 0, len(dir)-res.Removed)
	for i, c := range dir {
		if _, ok := drop[i]; ok {
			continue
		}
		if m, ok := replace[i]; ok {
			c = m
		}
		out = append(out, c)
	}
	return out, res
}

// pickSurvivor returns the earliest-added member; unknown add times lose to
// known ones and directory order breaks ties.
func pickSurvivor(dir []model.Company, group []int) int {
	best := group[0]
	for _, i := range group[1:] {
		a, b := dir[i].AddedAt, dir[best].AddedAt
		switch {
		case a.IsZero():
		case b.IsZero():
			best = i
		case a.Before(b):
			best = i
		}
	}
	return best
}

// mergeRecords folds records[1:] into records[0]. Scalars take the most
// complete non-empty value, categories and partners are unioned.
func mergeRecords(records []model.Company) model.Company {
	out := records[0]
	out.ID = NewID(out.Name)
	for _, c := range records[1:] {
		out.Description = mostComplete(out.Description, c.Description)
		out.Website = mostComplete(out.Website, c.Website)
		out.Region = mostComplete(out.Region, c.Region)
		out.Focus = mostComplete(out.Focus, c.Focus)
		out.ParentCompany = mostComplete(out.ParentCompany, c.ParentCompany)
		out.Categories = unionCategories(out.Categories, c.Categories)
		out.Partners = fillPartners(out.Partners, c.Partners)

		if !c.AddedAt.IsZero() && (out.AddedAt.IsZero() || c.AddedAt.Before(out.AddedAt)) {
			out.AddedAt = c.AddedAt
		}
		if c.UpdatedAt.After(out.UpdatedAt) {
			out.UpdatedAt = c.UpdatedAt
		}
	}
	return out
}

// mostComplete keeps cur unless next is strictly longer.
func mostComplete(cur, next string) string {
	next = strings.TrimSpace(next)
	if utf8.RuneCountInString(next) > utf8.RuneCountInString(strings.TrimSpace(cur)) {
		return next
	}
	return cur
}

// fillPartners unions partners by case-insensitive name; existing values are
// kept and only missing fields are filled from later records.
func fillPartners(existing, incoming []model.Partner) []model.Partner {
	if len(incoming) == 0 {
		return existing
	}
	out := make([]model.Partner, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	pos := make(map[string]int, len(out))
	for i, p := range out {
		pos[partnerKey(p.Name)] = i
	}
	for _, p := range incoming {
		key := partnerKey(p.Name)
		if key == "" {
			continue
		}
		i, ok := pos[key]
		if !ok {
			pos[key] = len(out)
			out = append(out, p)
			continue
		}
		cur := &out[i]
		if cur.Description == "" {
			cur.Description = p.Description
		}
		if cur.Date == "" {
			cur.Date = p.Date
		}
		if cur.SourceURL == "" {
			cur.SourceURL = p.SourceURL
		}
	}
	return out
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

// union attaches the larger root under the smaller so roots stay the lowest index.
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	switch {
	case ra == rb:
	case ra < rb:
		u.parent[rb] = ra
	default:
		u.parent[ra] = rb
	}
}
