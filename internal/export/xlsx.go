// Package export writes the ranked output for analyst consumption.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/poi-rank/internal/model"
)

var xlsxHeader = []string{
	"place_id", "name", "primary_category", "address", "lat", "lng",
	"google_maps_url", "captured_on", "rating", "rating_count",
	"business_strength", "energy_weight", "opportunity_score", "decile", "tier",
}

// WriteXLSX writes ranked places to an XLSX file, one row per place in the
// given (score-descending) order.
func WriteXLSX(places []model.RankedPlace, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Ranking")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeader {
		header.AddCell().Value = h
	}

	for _, p := range places {
		row := sheet.AddRow()
		row.AddCell().Value = p.PlaceID
		row.AddCell().Value = p.Name
		row.AddCell().Value = p.PrimaryCategory
		row.AddCell().Value = p.Address
		row.AddCell().SetFloat(p.Lat)
		row.AddCell().SetFloat(p.Lng)
		row.AddCell().Value = p.MapsURL
		row.AddCell().Value = p.CapturedOn.Format("2006-01-02")
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetInt(p.RatingCount)
		row.AddCell().SetFloat(p.BusinessStrength)
		row.AddCell().SetFloat(p.EnergyWeight)
		row.AddCell().SetFloat(p.OpportunityScore)
		row.AddCell().SetInt(p.Decile)
		row.AddCell().Value = string(p.Tier)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
