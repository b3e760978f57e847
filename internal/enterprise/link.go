package enterprise

import (
	"github.com/sells-group/chain-tracker/internal/model"
	"github.com/sells-group/chain-tracker/internal/resolve"
)

// LinkPartnerships resolves every partner of every directory company against
// the enterprise names and returns the partnerships per canonical name.
//
// An enterprise lists each directory company at most once; the first
// partner record that links them supplies the description. Unresolved
// partners are skipped. The result depends only on the inputs.
func LinkPartnerships(directory []model.Company, enterprises []Enterprise, m *resolve.Matcher) map[string][]Partnership {
	candidates := resolve.NewCandidates(Names(enterprises))
	links := make(map[string][]Partnership)
	seen := make(map[string]map[string]struct{})

	for _, c := range directory {
		for _, p := range c.Partners {
			match, ok := m.Match(p.Name, candidates)
			if !ok {
				continue
			}
			if seen[match.Name] == nil {
				seen[match.Name] = make(map[string]struct{})
			}
			if _, dup := seen[match.Name][c.Name]; dup {
				continue
			}
			seen[match.Name][c.Name] = struct{}{}
			links[match.Name] = append(links[match.Name], Partnership{
				DirectoryCompany: c.Name,
				Description:      p.Description,
			})
		}
	}
	return links
}
