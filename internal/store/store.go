// Package store persists completed analyses. Records are append-only:
// nothing is ever updated after it is written.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/claimlens/claimlens/internal/config"
	"github.com/claimlens/claimlens/internal/model"
)

// Filter specifies criteria for listing analyses.
type Filter struct {
	Status model.Status `json:"status,omitempty"`
	Limit  int          `json:"limit,omitempty"`
}

// Store defines the persistence interface for analysis records.
type Store interface {
	// Append writes a completed analysis. The record's ID and CreatedAt are
	// assigned here if unset.
	Append(ctx context.Context, analysis *model.Analysis) error
	// ListRecent returns analyses newest first, optionally filtered by
	// status label.
	ListRecent(ctx context.Context, filter Filter) ([]model.Analysis, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// defaultListLimit caps ListRecent when the filter does not set one.
const defaultListLimit = 50

// Open creates a Store from config.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = "claimlens.db"
		}
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
