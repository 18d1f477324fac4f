// Package model defines the core data types flowing through the ranking pipeline.
package model

import "time"

// Observation is one timestamped snapshot of a place, as produced by the
// POI fetcher. The same PlaceID may appear many times across fetch runs.
type Observation struct {
	PlaceID     string    `json:"place_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Categories  []string  `json:"types"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"user_ratings_total"`
	MapsURL     string    `json:"google_maps_url"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// PrimaryCategory returns the first category label, or "" when the
// observation carries none.
func (o Observation) PrimaryCategory() string {
	if len(o.Categories) == 0 {
		return ""
	}
	return o.Categories[0]
}

// ScoredPlace is a canonical (deduplicated) observation with its opportunity
// score factors attached.
type ScoredPlace struct {
	Observation
	BusinessStrength float64 `json:"business_strength"`
	EnergyWeight     float64 `json:"energy_weight"`
	OpportunityScore float64 `json:"opportunity_score"`
}

// TieredPlace is a scored place with its rank band assigned.
type TieredPlace struct {
	ScoredPlace
	Decile int  `json:"decile"` // 1 = top score band
	Tier   Tier `json:"tier"`
}

// RankedPlace is the final consumption-ready record, fully rebuilt on every
// pipeline run.
type RankedPlace struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	PrimaryCategory  string    `json:"primary_category"`
	Address          string    `json:"address"`
	Lat              float64   `json:"lat"`
	Lng              float64   `json:"lng"`
	MapsURL          string    `json:"google_maps_url"`
	CapturedOn       time.Time `json:"captured_on"`
	Rating           float64   `json:"rating"`
	RatingCount      int       `json:"rating_count"`
	BusinessStrength float64   `json:"business_strength"`
	EnergyWeight     float64   `json:"energy_weight"`
	OpportunityScore float64   `json:"opportunity_score"`
	Decile           int       `json:"decile"`
	Tier             Tier      `json:"tier"`
}
