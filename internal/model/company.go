// Package model defines the persisted shapes shared across the tracker:
// directory companies, research records, news items and user lists.
package model

import (
	"strings"
	"time"
)

// Company is a directory entry: a company tracked for blockchain/crypto
// activity along with the partnerships it reports.
type Company struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ParentCompany string    `json:"parent_company,omitempty"` // explicit parent override
	Description   string    `json:"description,omitempty"`
	Website       string    `json:"website,omitempty"`
	Region        string    `json:"region,omitempty"`
	Focus         string    `json:"focus,omitempty"`
	Categories    []string  `json:"categories,omitempty"`
	Partners      []Partner `json:"partners,omitempty"`
	AddedAt       time.Time `json:"added_at"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Partner is a partnership declared by a directory company. Name is free
// text and may be an informal spelling of a registry enterprise.
type Partner struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// HasCategory reports whether c is tagged with category (case-insensitive).
func (c Company) HasCategory(category string) bool {
	for _, cat := range c.Categories {
		if strings.EqualFold(strings.TrimSpace(cat), strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

// CompanyList is a named, user-curated list of directory company IDs.
type CompanyList struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CompanyIDs []string  `json:"company_ids"`
	CreatedAt  time.Time `json:"created_at"`
}
