package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/poi-rank/internal/config"
)

// ValidateConfig checks that a ScorerConfig is internally consistent.
func ValidateConfig(cfg config.ScorerConfig) error {
	var errs []string

	if cfg.DefaultWeight < 0 {
		errs = append(errs, "default_weight must be >= 0")
	}

	for category, w := range cfg.CategoryWeights {
		if category == "" {
			errs = append(errs, "category_weights contains an empty category")
		}
		if w <= 0 {
			errs = append(errs, fmt.Sprintf("category_weights[%s] must be > 0, got %g", category, w))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
