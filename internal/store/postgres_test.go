package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/poi-rank/internal/model"
)

func newMockPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func TestPostgres_Migrate(t *testing.T) {
	st, mock := newMockPostgres(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS observations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InsertObservations(t *testing.T) {
	st, mock := newMockPostgres(t)

	mock.ExpectCopyFrom(pgx.Identifier{"observations"}, observationColumns).WillReturnResult(2)

	ts := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	n, err := st.InsertObservations(context.Background(), []model.Observation{
		{PlaceID: "p1", FetchedAt: ts},
		{PlaceID: "p2", FetchedAt: ts},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListObservations(t *testing.T) {
	st, mock := newMockPostgres(t)

	ts := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"place_id", "name", "address", "lat", "lng", "categories",
		"rating", "rating_count", "maps_url", "fetched_at",
	}).AddRow("p1", "Cafe", "Meent 1", 51.92, 4.48, []string{"cafe"}, 4.5, 80, "https://maps.google.com/?cid=1", ts)

	mock.ExpectQuery("FROM observations ORDER BY seq").WillReturnRows(rows)

	out, err := st.ListObservations(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].PlaceID)
	assert.Equal(t, []string{"cafe"}, out[0].Categories)
	assert.Equal(t, 80, out[0].RatingCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ReplaceRanking_Transactional(t *testing.T) {
	st, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM ranked_places").WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectCopyFrom(pgx.Identifier{"ranked_places"}, rankedColumns).WillReturnResult(1)
	mock.ExpectCommit()

	err := st.ReplaceRanking(context.Background(), []model.RankedPlace{
		{PlaceID: "p1", OpportunityScore: 35.3, Decile: 1, Tier: model.TierGold, CapturedOn: time.Now()},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ReplaceRanking_RollsBackOnCopyError(t *testing.T) {
	st, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM ranked_places").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"ranked_places"}, rankedColumns).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := st.ReplaceRanking(context.Background(), []model.RankedPlace{
		{PlaceID: "p1", Tier: model.TierGold, CapturedOn: time.Now()},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListRanking_TierFilter(t *testing.T) {
	st, mock := newMockPostgres(t)

	ts := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"place_id", "name", "primary_category", "address", "lat", "lng", "maps_url", "captured_on",
		"rating", "rating_count", "business_strength", "energy_weight", "opportunity_score", "decile", "tier",
	}).AddRow("p1", "Cafe", "cafe", "Meent 1", 51.92, 4.48, "", ts, 4.5, 80, 19.8, 1.7, 33.6, 1, "Gold")

	mock.ExpectQuery(`FROM ranked_places WHERE tier = \$1 ORDER BY opportunity_score DESC`).
		WithArgs("Gold").
		WillReturnRows(rows)

	out, err := st.ListRanking(context.Background(), RankingFilter{Tier: model.TierGold})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, model.TierGold, out[0].Tier)
	assert.NoError(t, mock.ExpectationsWereMet())
}
