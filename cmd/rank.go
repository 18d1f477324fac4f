package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/poi-rank/internal/config"
	"github.com/sells-group/poi-rank/internal/pipeline"
	"github.com/sells-group/poi-rank/internal/scorer"
	"github.com/sells-group/poi-rank/internal/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Recompute the full opportunity ranking from stored observations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := scorer.ValidateConfig(cfg.Scorer); err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		return runRanking(ctx, st, cfg)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

// runRanking executes one full recompute: every ranked record is rebuilt from
// scratch, and the output table is replaced only when the whole run succeeds.
func runRanking(ctx context.Context, st store.Store, cfg *config.Config) error {
	observations, err := st.ListObservations(ctx)
	if err != nil {
		return eris.Wrap(err, "rank: list observations")
	}
	if len(observations) == 0 {
		zap.L().Warn("rank: no observations in store, nothing to rank")
		return nil
	}

	p := pipeline.New(scorer.New(cfg.Scorer), cfg.Tiering, cfg.Pipeline.ScoreWorkers)
	ranked, err := p.Run(ctx, observations)
	if err != nil {
		return err
	}

	if err := st.ReplaceRanking(ctx, ranked); err != nil {
		return eris.Wrap(err, "rank: replace ranking")
	}

	zap.L().Info("rank complete",
		zap.Int("observations", len(observations)),
		zap.Int("ranked", len(ranked)),
	)
	return nil
}
