package model

import "time"

// ResearchRecord is the AI research result for one registry enterprise,
// keyed in the store by canonical enterprise name.
type ResearchRecord struct {
	Summary     string       `json:"summary"`
	Initiatives []Initiative `json:"initiatives"`
	LastUpdated time.Time    `json:"last_updated"`
}

// Initiative is a documented blockchain/crypto initiative of an enterprise.
type Initiative struct {
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// NewsItem is a manually added or AI-sourced news article.
type NewsItem struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Summary          string    `json:"summary,omitempty"`
	URL              string    `json:"url,omitempty"`
	Source           string    `json:"source,omitempty"`
	Date             string    `json:"date,omitempty"`
	RelatedCompanies []string  `json:"related_companies,omitempty"`
	AddedAt          time.Time `json:"added_at"`
}
