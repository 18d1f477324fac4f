// Package store persists raw observations and the ranked output table.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/poi-rank/internal/config"
	"github.com/sells-group/poi-rank/internal/model"
)

// RankingFilter specifies criteria for listing ranked places.
type RankingFilter struct {
	Tier  model.Tier `json:"tier,omitempty"`
	Limit int        `json:"limit,omitempty"`
}

// Store defines the persistence interface for the ranking pipeline.
// Observations are append-only snapshots; the ranking is fully replaced on
// every pipeline run.
type Store interface {
	// Observations
	InsertObservations(ctx context.Context, observations []model.Observation) (int64, error)
	// ListObservations returns all observations in ingestion order, which is
	// the order the deduplication tie-break relies on.
	ListObservations(ctx context.Context) ([]model.Observation, error)

	// Ranking
	// ReplaceRanking swaps the entire ranked table inside one transaction:
	// either the new ranking lands completely or the previous one survives.
	ReplaceRanking(ctx context.Context, places []model.RankedPlace) error
	ListRanking(ctx context.Context, filter RankingFilter) ([]model.RankedPlace, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store from config. Supported drivers: "sqlite", "postgres".
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
