package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/poi-rank/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func collect[T any](t *testing.T, r *strings.Reader) ([]T, error) {
	t.Helper()
	outCh, errCh := DecodeJSONArray[T](context.Background(), r)
	var out []T
	for item := range outCh {
		out = append(out, item)
	}
	return out, <-errCh
}

func TestDecodeJSONArray(t *testing.T) {
	input := `[{"place_id":"p1","rating":4.5},{"place_id":"p2","rating":3.0}]`

	out, err := collect[model.Observation](t, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].PlaceID)
	assert.Equal(t, 4.5, out[0].Rating)
	assert.Equal(t, "p2", out[1].PlaceID)
}

func TestDecodeJSONArray_Empty(t *testing.T) {
	out, err := collect[model.Observation](t, strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeJSONArray_NotAnArray(t *testing.T) {
	_, err := collect[model.Observation](t, strings.NewReader(`{"place_id":"p1"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected '['")
}

func TestDecodeJSONArray_MalformedElement(t *testing.T) {
	_, err := collect[model.Observation](t, strings.NewReader(`[{"place_id":1}]`))
	assert.Error(t, err)
}

func TestReadObservations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	payload := `[
		{"place_id":"p1","name":"Bakkerij","types":["bakery"],"rating":4.5,"user_ratings_total":200,"fetched_at":"2024-02-01T10:00:00Z"},
		{"name":"no id, skipped"},
		{"place_id":"p2","types":["cafe"],"fetched_at":"2024-02-01T11:00:00Z"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	result, err := ReadObservations(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Observations, 2)
	assert.Equal(t, "p1", result.Observations[0].PlaceID)
	assert.Equal(t, 200, result.Observations[0].RatingCount)
	assert.Equal(t, "p2", result.Observations[1].PlaceID)
}

func TestReadObservations_MissingFile(t *testing.T) {
	_, err := ReadObservations(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
