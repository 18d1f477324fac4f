package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/poi-rank/internal/config"
	"github.com/sells-group/poi-rank/internal/geo"
)

func writeBatchFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportFiles(t *testing.T) {
	st := newTestStore(t)

	batch1 := writeBatchFile(t, "batch1.json", `[
		{"place_id": "a", "name": "Cafe Noord", "lat": 51.92, "lng": 4.47, "types": ["cafe"], "rating": 4.5, "user_ratings_total": 120, "fetched_at": "2024-02-01T09:00:00Z"},
		{"place_id": "", "name": "No ID", "lat": 51.92, "lng": 4.47, "types": ["cafe"], "rating": 4.0, "user_ratings_total": 5, "fetched_at": "2024-02-01T09:00:00Z"}
	]`)
	batch2 := writeBatchFile(t, "batch2.json", `[
		{"place_id": "b", "name": "Bakkerij Zuid", "lat": 51.90, "lng": 4.49, "types": ["bakery"], "rating": 4.2, "user_ratings_total": 60, "fetched_at": "2024-02-01T09:00:00Z"}
	]`)

	err := importFiles(context.Background(), st, nil, []string{batch1, batch2}, 2)
	require.NoError(t, err)

	obs, err := st.ListObservations(context.Background())
	require.NoError(t, err)
	require.Len(t, obs, 2)

	ids := []string{obs[0].PlaceID, obs[1].PlaceID}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestImportFilesBounds(t *testing.T) {
	st := newTestStore(t)

	// One place inside the Rotterdam box, one far outside.
	batch := writeBatchFile(t, "batch.json", `[
		{"place_id": "in", "name": "Inside", "lat": 51.92, "lng": 4.47, "types": ["cafe"], "rating": 4.0, "user_ratings_total": 10, "fetched_at": "2024-02-01T09:00:00Z"},
		{"place_id": "out", "name": "Outside", "lat": 48.85, "lng": 2.35, "types": ["cafe"], "rating": 4.0, "user_ratings_total": 10, "fetched_at": "2024-02-01T09:00:00Z"}
	]`)

	bounds, err := geo.NewBounds(config.BoundsConfig{
		MinLat: 51.85, MinLng: 4.35, MaxLat: 51.99, MaxLng: 4.60,
	})
	require.NoError(t, err)

	require.NoError(t, importFiles(context.Background(), st, bounds, []string{batch}, 1))

	obs, err := st.ListObservations(context.Background())
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "in", obs[0].PlaceID)
}

func TestImportFilesMissingFile(t *testing.T) {
	st := newTestStore(t)
	err := importFiles(context.Background(), st, nil, []string{"/nonexistent/batch.json"}, 1)
	assert.Error(t, err)
}
