package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/poi-rank/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS observations (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	place_id     TEXT NOT NULL,
	name         TEXT,
	address      TEXT,
	lat          REAL,
	lng          REAL,
	categories   TEXT,
	rating       REAL NOT NULL DEFAULT 0,
	rating_count INTEGER NOT NULL DEFAULT 0,
	maps_url     TEXT,
	fetched_at   DATETIME NOT NULL,
	imported_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS ranked_places (
	place_id          TEXT PRIMARY KEY,
	name              TEXT,
	primary_category  TEXT,
	address           TEXT,
	lat               REAL,
	lng               REAL,
	maps_url          TEXT,
	captured_on       DATETIME NOT NULL,
	rating            REAL NOT NULL,
	rating_count      INTEGER NOT NULL,
	business_strength REAL NOT NULL,
	energy_weight     REAL NOT NULL,
	opportunity_score REAL NOT NULL,
	decile            INTEGER NOT NULL,
	tier              TEXT NOT NULL,
	computed_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_place_id ON observations(place_id);
CREATE INDEX IF NOT EXISTS idx_observations_fetched_at ON observations(fetched_at);
CREATE INDEX IF NOT EXISTS idx_ranked_places_score ON ranked_places(opportunity_score);
CREATE INDEX IF NOT EXISTS idx_ranked_places_tier ON ranked_places(tier);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertObservations(ctx context.Context, observations []model.Observation) (int64, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin insert observations")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (id, place_id, name, address, lat, lng, categories, rating, rating_count, maps_url, fetched_at, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert observation")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, obs := range observations {
		categories, err := json.Marshal(obs.Categories)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: marshal categories for %s", obs.PlaceID)
		}
		_, err = stmt.ExecContext(ctx,
			uuid.New().String(), obs.PlaceID, obs.Name, obs.Address, obs.Lat, obs.Lng,
			string(categories), obs.Rating, obs.RatingCount, obs.MapsURL, obs.FetchedAt.UTC(), now,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert observation %s", obs.PlaceID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit insert observations")
	}
	return int64(len(observations)), nil
}

func (s *SQLiteStore) ListObservations(ctx context.Context) ([]model.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT place_id, name, address, lat, lng, categories, rating, rating_count, maps_url, fetched_at
		FROM observations ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list observations")
	}
	defer rows.Close()

	var out []model.Observation
	for rows.Next() {
		var obs model.Observation
		var categories string
		if err := rows.Scan(&obs.PlaceID, &obs.Name, &obs.Address, &obs.Lat, &obs.Lng,
			&categories, &obs.Rating, &obs.RatingCount, &obs.MapsURL, &obs.FetchedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan observation")
		}
		if categories != "" {
			if err := json.Unmarshal([]byte(categories), &obs.Categories); err != nil {
				return nil, eris.Wrapf(err, "sqlite: unmarshal categories for %s", obs.PlaceID)
			}
		}
		out = append(out, obs)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate observations")
}

func (s *SQLiteStore) ReplaceRanking(ctx context.Context, places []model.RankedPlace) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin replace ranking")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM ranked_places`); err != nil {
		return eris.Wrap(err, "sqlite: clear ranking")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ranked_places (place_id, name, primary_category, address, lat, lng, maps_url, captured_on,
			rating, rating_count, business_strength, energy_weight, opportunity_score, decile, tier, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert ranked place")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range places {
		_, err := stmt.ExecContext(ctx,
			p.PlaceID, p.Name, p.PrimaryCategory, p.Address, p.Lat, p.Lng, p.MapsURL, p.CapturedOn.UTC(),
			p.Rating, p.RatingCount, p.BusinessStrength, p.EnergyWeight, p.OpportunityScore,
			p.Decile, string(p.Tier), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert ranked place %s", p.PlaceID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit replace ranking")
}

func (s *SQLiteStore) ListRanking(ctx context.Context, filter RankingFilter) ([]model.RankedPlace, error) {
	query := `
		SELECT place_id, name, primary_category, address, lat, lng, maps_url, captured_on,
			rating, rating_count, business_strength, energy_weight, opportunity_score, decile, tier
		FROM ranked_places`
	var args []any
	if filter.Tier != "" {
		query += ` WHERE tier = ?`
		args = append(args, string(filter.Tier))
	}
	query += ` ORDER BY opportunity_score DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list ranking")
	}
	defer rows.Close()

	var out []model.RankedPlace
	for rows.Next() {
		var p model.RankedPlace
		var tier string
		if err := rows.Scan(&p.PlaceID, &p.Name, &p.PrimaryCategory, &p.Address, &p.Lat, &p.Lng,
			&p.MapsURL, &p.CapturedOn, &p.Rating, &p.RatingCount, &p.BusinessStrength,
			&p.EnergyWeight, &p.OpportunityScore, &p.Decile, &tier); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan ranked place")
		}
		p.Tier = model.Tier(tier)
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate ranking")
}
