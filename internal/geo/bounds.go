// Package geo restricts observation imports to a configured study area.
package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/poi-rank/internal/config"
	"github.com/sells-group/poi-rank/internal/model"
)

// Bounds is a lat/lng bounding box filter.
type Bounds struct {
	bounds *geom.Bounds
}

// NewBounds builds a Bounds from config. Returns nil when the box is unset
// (no filtering).
func NewBounds(cfg config.BoundsConfig) (*Bounds, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if cfg.MinLat > cfg.MaxLat || cfg.MinLng > cfg.MaxLng {
		return nil, eris.Errorf("geo: invalid bounds (%g,%g)-(%g,%g)", cfg.MinLat, cfg.MinLng, cfg.MaxLat, cfg.MaxLng)
	}
	// geom orders coordinates x (lng) then y (lat).
	b := geom.NewBounds(geom.XY).Set(cfg.MinLng, cfg.MinLat, cfg.MaxLng, cfg.MaxLat)
	return &Bounds{bounds: b}, nil
}

// Contains reports whether the observation's coordinates fall inside the box.
// A nil Bounds contains everything.
func (b *Bounds) Contains(obs model.Observation) bool {
	if b == nil {
		return true
	}
	return b.bounds.OverlapsPoint(geom.XY, geom.Coord{obs.Lng, obs.Lat})
}

// Filter returns the observations inside the box plus the count dropped.
func (b *Bounds) Filter(observations []model.Observation) ([]model.Observation, int) {
	if b == nil {
		return observations, 0
	}
	kept := make([]model.Observation, 0, len(observations))
	for _, obs := range observations {
		if b.Contains(obs) {
			kept = append(kept, obs)
		}
	}
	return kept, len(observations) - len(kept)
}
