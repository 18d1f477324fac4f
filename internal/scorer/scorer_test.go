package scorer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/poi-rank/internal/config"
	"github.com/sells-group/poi-rank/internal/model"
)

func TestBusinessStrength(t *testing.T) {
	// 4.0 * ln(181) ≈ 20.7976
	got := BusinessStrength(4.0, 180)
	assert.InDelta(t, 4.0*math.Log(181), got, 1e-9)
}

func TestBusinessStrength_ZeroReviews(t *testing.T) {
	// ln(1) = 0: an unreviewed venue scores zero no matter the rating.
	assert.Zero(t, BusinessStrength(5.0, 0))
	assert.Zero(t, BusinessStrength(0, 0))
}

func TestBusinessStrength_MonotoneInCount(t *testing.T) {
	prev := 0.0
	for _, count := range []int{0, 1, 2, 10, 100, 1000, 100000} {
		s := BusinessStrength(4.5, count)
		assert.GreaterOrEqual(t, s, prev, "count %d", count)
		prev = s
	}
}

func TestScore_RestaurantExample(t *testing.T) {
	s := New(DefaultScorerConfig())
	scored := s.Score(model.Observation{
		PlaceID:     "P1",
		Categories:  []string{"restaurant"},
		Rating:      4.0,
		RatingCount: 180,
	})

	wantStrength := 4.0 * math.Log(181)
	assert.InDelta(t, wantStrength, scored.BusinessStrength, 1e-9)
	assert.InDelta(t, 1.7, scored.EnergyWeight, 1e-9)
	assert.InDelta(t, wantStrength*1.7, scored.OpportunityScore, 1e-9)
	// Sanity against the worked example: ≈ 35.35
	assert.InDelta(t, 35.35, scored.OpportunityScore, 0.05)
}

func TestScore_UnmappedCategoryDefaults(t *testing.T) {
	s := New(DefaultScorerConfig())
	scored := s.Score(model.Observation{
		PlaceID:     "P2",
		Categories:  []string{"car_wash"},
		Rating:      4.0,
		RatingCount: 50,
	})
	assert.InDelta(t, 1.0, scored.EnergyWeight, 1e-9)
}

func TestScore_NoCategoryDefaults(t *testing.T) {
	s := New(DefaultScorerConfig())
	scored := s.Score(model.Observation{PlaceID: "P3", Rating: 3.5, RatingCount: 10})
	assert.InDelta(t, 1.0, scored.EnergyWeight, 1e-9)
}

func TestEnergyWeight_Table(t *testing.T) {
	s := New(DefaultScorerConfig())
	cases := map[string]float64{
		"restaurant":  1.7,
		"bakery":      1.7,
		"gas_station": 1.5,
		"shoe_store":  1.4,
		"hair_care":   1.2,
		"accounting":  1.0,
		"museum":      0.9,
	}
	for category, want := range cases {
		assert.InDelta(t, want, s.EnergyWeight(category), 1e-9, category)
	}
}

func TestNew_EmptyConfigFallsBack(t *testing.T) {
	s := New(config.ScorerConfig{})
	assert.InDelta(t, 1.7, s.EnergyWeight("restaurant"), 1e-9)
	assert.InDelta(t, 1.0, s.EnergyWeight("car_wash"), 1e-9)
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultScorerConfig()))

	err := ValidateConfig(config.ScorerConfig{
		DefaultWeight:   -1,
		CategoryWeights: map[string]float64{"": 0},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_weight")
	assert.Contains(t, err.Error(), "empty category")
}
