// Package store persists the named collections the tracker works from. Each
// collection is read and written whole; there are no multi-collection
// transactions.
package store

import (
	"context"
	"errors"
	"time"
)

// Collection names.
const (
	CollectionCompanies = "companies"
	CollectionNews      = "news"
	CollectionLists     = "lists"
	CollectionResearch  = "global-activity-by-enterprise-name"
	CollectionLastScan  = "last-scan-timestamp"
)

// ErrNotFound is returned by Get when a collection has never been saved.
var ErrNotFound = errors.New("store: collection not found")

// CollectionStat describes one stored collection.
type CollectionStat struct {
	Name      string    `json:"name"`
	Bytes     int64     `json:"bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines whole-collection persistence. Values are JSON documents.
type Store interface {
	Get(ctx context.Context, collection string) ([]byte, error)
	Put(ctx context.Context, collection string, data []byte) error
	Stats(ctx context.Context) ([]CollectionStat, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
