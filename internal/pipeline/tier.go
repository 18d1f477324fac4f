package pipeline

import (
	"sort"

	"github.com/sells-group/poi-rank/internal/config"
	"github.com/sells-group/poi-rank/internal/model"
)

// AssignTiers ranks scored places by opportunity score descending and
// partitions them into cfg.Buckets contiguous rank bands, band 1 holding the
// top scores. Band sizes differ by at most one: with N places and B buckets
// the first N mod B bands hold floor(N/B)+1 places, the rest floor(N/B).
// When N < B the top N bands hold one place each. Ties in score keep their
// relative input order (stable sort), so the assignment is reproducible for
// identical input. Returns the places in rank order.
func AssignTiers(scored []model.ScoredPlace, cfg config.TieringConfig) []model.TieredPlace {
	buckets := cfg.Buckets
	if buckets <= 0 {
		buckets = 10
	}
	gold, silver := cfg.GoldDeciles, cfg.SilverDeciles
	if gold == 0 && silver == 0 {
		gold, silver = 2, 3
	}

	ranked := make([]model.ScoredPlace, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OpportunityScore > ranked[j].OpportunityScore
	})

	n := len(ranked)
	base := n / buckets
	extra := n % buckets

	out := make([]model.TieredPlace, 0, n)
	idx := 0
	for band := 1; band <= buckets && idx < n; band++ {
		size := base
		if band <= extra {
			size++
		}
		for i := 0; i < size; i++ {
			out = append(out, model.TieredPlace{
				ScoredPlace: ranked[idx],
				Decile:      band,
				Tier:        model.TierForDecile(band, gold, silver),
			})
			idx++
		}
	}
	return out
}
