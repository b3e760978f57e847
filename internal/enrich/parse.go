package enrich

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/chain-tracker/internal/company"
	"github.com/sells-group/chain-tracker/internal/model"
)

type companyResponse struct {
	Description   string          `json:"description"`
	Website       string          `json:"website"`
	Region        string          `json:"region"`
	Focus         string          `json:"focus"`
	ParentCompany string          `json:"parent_company"`
	Categories    []string        `json:"categories"`
	Partners      []model.Partner `json:"partners"`
}

type researchResponse struct {
	Summary     string             `json:"summary"`
	Initiatives []model.Initiative `json:"initiatives"`
}

// parseCompany turns a model reply into a patch. An empty reply is an empty
// patch; blank fields stay nil so they never overwrite stored values.
func parseCompany(text string) (company.Patch, error) {
	var r companyResponse
	if err := decode(text, &r); err != nil {
		return company.Patch{}, err
	}

	p := company.Patch{
		Description:   optional(r.Description),
		Website:       optional(r.Website),
		Region:        optional(r.Region),
		Focus:         optional(r.Focus),
		ParentCompany: optional(r.ParentCompany),
		Categories:    r.Categories,
	}
	for _, partner := range r.Partners {
		if strings.TrimSpace(partner.Name) == "" {
			continue
		}
		p.Partners = append(p.Partners, partner)
	}
	return p, nil
}

func parseResearch(text string, now time.Time) (model.ResearchRecord, error) {
	var r researchResponse
	if err := decode(text, &r); err != nil {
		return model.ResearchRecord{}, err
	}

	rec := model.ResearchRecord{
		Summary:     strings.TrimSpace(r.Summary),
		LastUpdated: now,
	}
	seen := make(map[string]struct{}, len(r.Initiatives))
	for _, in := range r.Initiatives {
		in.Title = strings.TrimSpace(in.Title)
		if in.Title == "" {
			continue
		}
		if _, dup := seen[in.Title]; dup {
			continue
		}
		seen[in.Title] = struct{}{}
		rec.Initiatives = append(rec.Initiatives, in)
	}
	return rec, nil
}

func decode(text string, dst any) error {
	cleaned := cleanJSON(text)
	if cleaned == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		return eris.Wrap(err, "enrich: parse response")
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// cleanJSON strips markdown fences, extracts the JSON object, and repairs truncation.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	text = text[start:]
	if end := strings.LastIndex(text, "}"); end >= 0 && balanced(text[:end+1]) {
		text = text[:end+1]
	}

	return repairTruncatedJSON(strings.TrimSpace(text))
}

// balanced reports whether every brace and bracket outside strings is closed.
func balanced(text string) bool {
	stack, inString := scanDelimiters(text)
	return len(stack) == 0 && !inString
}

// scanDelimiters returns the closers still owed at the end of text, and
// whether text ends inside a string.
func scanDelimiters(text string) (stack []byte, inString bool) {
	escape := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escape:
			escape = false
		case c == '\\' && inString:
			escape = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			stack = append(stack, '}')
		case c == '[':
			stack = append(stack, ']')
		case c == '}' || c == ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return stack, inString
}

// repairTruncatedJSON closes an unterminated string and any unclosed
// brackets or braces left by a reply cut off at max tokens.
func repairTruncatedJSON(text string) string {
	if text == "" {
		return text
	}
	stack, inString := scanDelimiters(text)
	if inString {
		text += `"`
	}
	for i := len(stack) - 1; i >= 0; i-- {
		text = strings.TrimRight(text, " \t\n\r,")
		text += string(stack[i])
	}
	return text
}
