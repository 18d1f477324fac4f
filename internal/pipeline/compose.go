package pipeline

import (
	"math"

	"github.com/sells-group/poi-rank/internal/model"
)

// Compose joins canonical place attributes with their tier assignment into
// the final consumption-ready records. Places without a resolvable score
// (NaN, from upstream mismatches) are filtered out rather than failing the
// run. Output order is opportunity score descending, which AssignTiers
// already established and the stable pass here preserves.
func Compose(tiered []model.TieredPlace) []model.RankedPlace {
	out := make([]model.RankedPlace, 0, len(tiered))
	for _, tp := range tiered {
		if math.IsNaN(tp.OpportunityScore) {
			continue
		}
		out = append(out, model.RankedPlace{
			PlaceID:          tp.PlaceID,
			Name:             tp.Name,
			PrimaryCategory:  tp.PrimaryCategory(),
			Address:          tp.Address,
			Lat:              tp.Lat,
			Lng:              tp.Lng,
			MapsURL:          tp.MapsURL,
			CapturedOn:       tp.FetchedAt,
			Rating:           tp.Rating,
			RatingCount:      tp.RatingCount,
			BusinessStrength: tp.BusinessStrength,
			EnergyWeight:     tp.EnergyWeight,
			OpportunityScore: tp.OpportunityScore,
			Decile:           tp.Decile,
			Tier:             tp.Tier,
		})
	}
	return out
}
