package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/poi-rank/internal/config"
	"github.com/sells-group/poi-rank/internal/model"
	"github.com/sells-group/poi-rank/internal/scorer"
)

// Pipeline turns raw, possibly-duplicated observations into one ranked,
// tiered record per place.
type Pipeline struct {
	scorer  *scorer.Scorer
	tiering config.TieringConfig
	workers int
}

// New creates a Pipeline. A nil scorer gets the default category table;
// workers <= 0 means sequential scoring.
func New(sc *scorer.Scorer, tiering config.TieringConfig, workers int) *Pipeline {
	if sc == nil {
		sc = scorer.New(scorer.DefaultScorerConfig())
	}
	return &Pipeline{scorer: sc, tiering: tiering, workers: workers}
}

// Run executes the full chain: validate, normalize, deduplicate, score,
// tier, compose. Scoring fans out over a bounded worker group since places
// score independently; deduplication and tiering are the two barriers where
// the whole batch must be visible. Fails without partial output on invalid
// input.
func (p *Pipeline) Run(ctx context.Context, observations []model.Observation) ([]model.RankedPlace, error) {
	log := zap.L()

	if err := ValidateObservations(observations); err != nil {
		return nil, err
	}

	normalized := NormalizeAll(observations)
	canonical := Deduplicate(normalized)
	log.Info("pipeline: deduplicated observations",
		zap.Int("observations", len(observations)),
		zap.Int("places", len(canonical)),
	)

	scored := make([]model.ScoredPlace, len(canonical))
	if p.workers <= 1 {
		for i, obs := range canonical {
			scored[i] = p.scorer.Score(obs)
		}
	} else {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers)
		for i, obs := range canonical {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				scored[i] = p.scorer.Score(obs)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	tiered := AssignTiers(scored, p.tiering)
	ranked := Compose(tiered)

	log.Info("pipeline: ranking complete",
		zap.Int("ranked", len(ranked)),
		zap.Int("dropped", len(tiered)-len(ranked)),
	)
	return ranked, nil
}
