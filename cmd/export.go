package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/poi-rank/internal/export"
	"github.com/sells-group/poi-rank/internal/store"
)

var exportOutPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current ranking to an XLSX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		ranked, err := st.ListRanking(ctx, store.RankingFilter{})
		if err != nil {
			return err
		}

		if err := export.WriteXLSX(ranked, exportOutPath); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.Int("places", len(ranked)),
			zap.String("out", exportOutPath),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutPath, "out", "ranking.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
