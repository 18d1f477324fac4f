package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/poi-rank/internal/db"
	"github.com/sells-group/poi-rank/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS observations (
	seq          BIGSERIAL PRIMARY KEY,
	id           TEXT NOT NULL UNIQUE,
	place_id     TEXT NOT NULL,
	name         TEXT,
	address      TEXT,
	lat          DOUBLE PRECISION,
	lng          DOUBLE PRECISION,
	categories   TEXT[],
	rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
	rating_count BIGINT NOT NULL DEFAULT 0,
	maps_url     TEXT,
	fetched_at   TIMESTAMPTZ NOT NULL,
	imported_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ranked_places (
	place_id          TEXT PRIMARY KEY,
	name              TEXT,
	primary_category  TEXT,
	address           TEXT,
	lat               DOUBLE PRECISION,
	lng               DOUBLE PRECISION,
	maps_url          TEXT,
	captured_on       TIMESTAMPTZ NOT NULL,
	rating            DOUBLE PRECISION NOT NULL,
	rating_count      BIGINT NOT NULL,
	business_strength DOUBLE PRECISION NOT NULL,
	energy_weight     DOUBLE PRECISION NOT NULL,
	opportunity_score DOUBLE PRECISION NOT NULL,
	decile            INT NOT NULL,
	tier              TEXT NOT NULL,
	computed_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_place_id ON observations(place_id);
CREATE INDEX IF NOT EXISTS idx_observations_fetched_at ON observations(fetched_at);
CREATE INDEX IF NOT EXISTS idx_ranked_places_score ON ranked_places(opportunity_score);
CREATE INDEX IF NOT EXISTS idx_ranked_places_tier ON ranked_places(tier);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var observationColumns = []string{
	"id", "place_id", "name", "address", "lat", "lng", "categories",
	"rating", "rating_count", "maps_url", "fetched_at", "imported_at",
}

func (s *PostgresStore) InsertObservations(ctx context.Context, observations []model.Observation) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(observations))
	for _, obs := range observations {
		rows = append(rows, []any{
			uuid.New().String(), obs.PlaceID, obs.Name, obs.Address, obs.Lat, obs.Lng,
			obs.Categories, obs.Rating, obs.RatingCount, obs.MapsURL, obs.FetchedAt.UTC(), now,
		})
	}

	n, err := db.CopyFrom(ctx, s.pool, "observations", observationColumns, rows)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: insert observations")
	}
	return n, nil
}

func (s *PostgresStore) ListObservations(ctx context.Context) ([]model.Observation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT place_id, name, address, lat, lng, categories, rating, rating_count, maps_url, fetched_at
		FROM observations ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list observations")
	}
	defer rows.Close()

	var out []model.Observation
	for rows.Next() {
		var obs model.Observation
		if err := rows.Scan(&obs.PlaceID, &obs.Name, &obs.Address, &obs.Lat, &obs.Lng,
			&obs.Categories, &obs.Rating, &obs.RatingCount, &obs.MapsURL, &obs.FetchedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan observation")
		}
		out = append(out, obs)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate observations")
}

var rankedColumns = []string{
	"place_id", "name", "primary_category", "address", "lat", "lng", "maps_url", "captured_on",
	"rating", "rating_count", "business_strength", "energy_weight", "opportunity_score",
	"decile", "tier", "computed_at",
}

func (s *PostgresStore) ReplaceRanking(ctx context.Context, places []model.RankedPlace) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin replace ranking")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM ranked_places`); err != nil {
		return eris.Wrap(err, "postgres: clear ranking")
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(places))
	for _, p := range places {
		rows = append(rows, []any{
			p.PlaceID, p.Name, p.PrimaryCategory, p.Address, p.Lat, p.Lng, p.MapsURL, p.CapturedOn.UTC(),
			p.Rating, p.RatingCount, p.BusinessStrength, p.EnergyWeight, p.OpportunityScore,
			p.Decile, string(p.Tier), now,
		})
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"ranked_places"}, rankedColumns, pgx.CopyFromRows(rows)); err != nil {
			return eris.Wrap(err, "postgres: copy ranking")
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit replace ranking")
}

func (s *PostgresStore) ListRanking(ctx context.Context, filter RankingFilter) ([]model.RankedPlace, error) {
	query := `
		SELECT place_id, name, primary_category, address, lat, lng, maps_url, captured_on,
			rating, rating_count, business_strength, energy_weight, opportunity_score, decile, tier
		FROM ranked_places`
	var args []any
	if filter.Tier != "" {
		args = append(args, string(filter.Tier))
		query += fmt.Sprintf(` WHERE tier = $%d`, len(args))
	}
	query += ` ORDER BY opportunity_score DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list ranking")
	}
	defer rows.Close()

	var out []model.RankedPlace
	for rows.Next() {
		var p model.RankedPlace
		var tier string
		if err := rows.Scan(&p.PlaceID, &p.Name, &p.PrimaryCategory, &p.Address, &p.Lat, &p.Lng,
			&p.MapsURL, &p.CapturedOn, &p.Rating, &p.RatingCount, &p.BusinessStrength,
			&p.EnergyWeight, &p.OpportunityScore, &p.Decile, &tier); err != nil {
			return nil, eris.Wrap(err, "postgres: scan ranked place")
		}
		p.Tier = model.Tier(tier)
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate ranking")
}
