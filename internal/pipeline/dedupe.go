package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/poi-rank/internal/model"
)

// ValidateObservations rejects a batch containing records without a place ID.
// The place ID is the grouping key for deduplication, so a missing one is a
// fatal input error rather than a defaultable field.
func ValidateObservations(observations []model.Observation) error {
	for i, obs := range observations {
		if obs.PlaceID == "" {
			return eris.Errorf("pipeline: observation %d has empty place_id", i)
		}
	}
	return nil
}

// Deduplicate selects one canonical observation per place ID: the one with
// the latest capture timestamp. On identical latest timestamps the record
// seen earlier in input order wins, so the selection is deterministic and a
// second pass over the output is a no-op. Output preserves first-seen entity
// order. Single pass, O(n).
func Deduplicate(observations []model.Observation) []model.Observation {
	latest := make(map[string]int, len(observations))
	order := make([]string, 0, len(observations))

	for i, obs := range observations {
		prev, seen := latest[obs.PlaceID]
		if !seen {
			latest[obs.PlaceID] = i
			order = append(order, obs.PlaceID)
			continue
		}
		if obs.FetchedAt.After(observations[prev].FetchedAt) {
			latest[obs.PlaceID] = i
		}
	}

	out := make([]model.Observation, 0, len(order))
	for _, id := range order {
		out = append(out, observations[latest[id]])
	}
	return out
}
