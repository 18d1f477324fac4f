// Package scorer computes opportunity scores for canonical place records.
package scorer

import (
	"math"

	"github.com/sells-group/poi-rank/internal/config"
	"github.com/sells-group/poi-rank/internal/model"
)

// DefaultScorerConfig returns the shipped category→energy-weight table.
// Weights reflect the estimated energy-intensity of each industry category;
// categories outside the table score the default 1.0.
func DefaultScorerConfig() config.ScorerConfig {
	return config.ScorerConfig{
		DefaultWeight: 1.0,
		CategoryWeights: map[string]float64{
			// Food, hospitality, grocery, lodging.
			"restaurant":             1.7,
			"cafe":                   1.7,
			"bakery":                 1.7,
			"bar":                    1.7,
			"food":                   1.7,
			"meal_takeaway":          1.7,
			"meal_delivery":          1.7,
			"supermarket":            1.7,
			"grocery_or_supermarket": 1.7,
			"convenience_store":      1.7,
			"lodging":                1.7,

			// Fuel retail.
			"gas_station": 1.5,

			// Mid-high retail and personal goods.
			"clothing_store":    1.4,
			"shoe_store":        1.4,
			"jewelry_store":     1.4,
			"electronics_store": 1.4,
			"furniture_store":   1.4,
			"department_store":  1.4,
			"home_goods_store":  1.4,

			// Personal care, mid retail, services.
			"beauty_salon":  1.2,
			"hair_care":     1.2,
			"spa":           1.2,
			"laundry":       1.2,
			"pharmacy":      1.2,
			"pet_store":     1.2,
			"florist":       1.2,
			"bicycle_store": 1.2,

			// Professional and office services (same as the default, listed
			// so the mapping is explicit rather than implied).
			"accounting":         1.0,
			"lawyer":             1.0,
			"real_estate_agency": 1.0,
			"insurance_agency":   1.0,
			"bank":               1.0,
			"finance":            1.0,

			// Low-footprint public and cultural venues.
			"museum":      0.9,
			"library":     0.9,
			"art_gallery": 0.9,
			"church":      0.9,
			"school":      0.9,
			"city_hall":   0.9,
			"park":        0.9,
		},
	}
}

// Scorer assigns opportunity scores from a category weight table.
type Scorer struct {
	weights       map[string]float64
	defaultWeight float64
}

// New creates a Scorer. An empty CategoryWeights map falls back to the
// shipped default table; a zero DefaultWeight falls back to 1.0.
func New(cfg config.ScorerConfig) *Scorer {
	weights := cfg.CategoryWeights
	if len(weights) == 0 {
		weights = DefaultScorerConfig().CategoryWeights
	}
	defaultWeight := cfg.DefaultWeight
	if defaultWeight == 0 {
		defaultWeight = 1.0
	}
	return &Scorer{weights: weights, defaultWeight: defaultWeight}
}

// BusinessStrength combines the popularity rating with a log-dampened review
// volume: rating * ln(1 + count). Zero reviews always yield zero, regardless
// of rating, since an unreviewed venue carries no validated popularity signal.
func BusinessStrength(rating float64, ratingCount int) float64 {
	return rating * math.Log1p(float64(ratingCount))
}

// EnergyWeight looks up the energy weight for a primary category.
func (s *Scorer) EnergyWeight(category string) float64 {
	if w, ok := s.weights[category]; ok {
		return w
	}
	return s.defaultWeight
}

// Score computes the opportunity score for one canonical observation.
func (s *Scorer) Score(obs model.Observation) model.ScoredPlace {
	strength := BusinessStrength(obs.Rating, obs.RatingCount)
	weight := s.EnergyWeight(obs.PrimaryCategory())

	return model.ScoredPlace{
		Observation:      obs,
		BusinessStrength: strength,
		EnergyWeight:     weight,
		OpportunityScore: strength * weight,
	}
}
