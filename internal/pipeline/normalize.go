// Package pipeline implements the observation-to-ranking transformation
// chain: normalize, deduplicate, score, tier, compose.
package pipeline

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/poi-rank/internal/model"
)

// Normalize cleans a single raw observation. Missing or malformed numeric
// signals become neutral zeros, the display name is NFC-normalized and
// trimmed, and the capture timestamp is floored to a UTC day boundary, which
// is the granularity used for all downstream comparisons. Total over any
// input shape and side-effect free.
func Normalize(obs model.Observation) model.Observation {
	if obs.Rating < 0 || math.IsNaN(obs.Rating) {
		obs.Rating = 0
	}
	if obs.RatingCount < 0 {
		obs.RatingCount = 0
	}

	obs.Name = strings.TrimSpace(norm.NFC.String(obs.Name))
	obs.Address = strings.TrimSpace(obs.Address)
	obs.FetchedAt = obs.FetchedAt.UTC().Truncate(24 * time.Hour)

	return obs
}

// NormalizeAll normalizes a batch in place order.
func NormalizeAll(observations []model.Observation) []model.Observation {
	out := make([]model.Observation, len(observations))
	for i, obs := range observations {
		out[i] = Normalize(obs)
	}
	return out
}
