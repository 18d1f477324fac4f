package fetcher

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/poi-rank/internal/model"
)

// ReadResult summarizes one batch file read.
type ReadResult struct {
	Observations []model.Observation
	Skipped      int // records without a place_id
}

// ReadObservations streams a fetcher batch file into Observations. Records
// missing a place_id cannot join the pipeline and are skipped with a count
// rather than failing the whole file.
func ReadObservations(ctx context.Context, path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close()

	obsCh, errCh := DecodeJSONArray[model.Observation](ctx, f)

	result := &ReadResult{}
	for obs := range obsCh {
		if obs.PlaceID == "" {
			result.Skipped++
			continue
		}
		result.Observations = append(result.Observations, obs)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	if result.Skipped > 0 {
		zap.L().Warn("fetcher: skipped records without place_id",
			zap.String("file", path),
			zap.Int("skipped", result.Skipped),
		)
	}
	return result, nil
}
