package category

import (
	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/stats"
)

// Overall returns the weighted composite score, clamped to [0,100]. Each
// category carries its own weight, so the caller passes exactly the slice
// produced by All.
func Overall(categories []model.HealthCategory) float64 {
	var total float64
	for _, c := range categories {
		total += c.Score * c.Weight
	}
	return stats.Clamp(total, 0, 100)
}

// trendBand is the relative change below which income movement counts as
// stable.
const trendBand = 0.05

// ComputeTrend classifies income movement over the last six records: the mean
// of the three most recent against the mean of the three before them. Fewer
// than six records is always stable.
func ComputeTrend(records []model.PayRecord) model.Trend {
	change, ok := growthRate(records)
	if !ok {
		return model.Trend{Direction: model.TrendStable}
	}

	switch {
	case change > trendBand:
		return model.Trend{Direction: model.TrendImproving, ChangePct: change * 100}
	case change < -trendBand:
		return model.Trend{Direction: model.TrendDeclining, ChangePct: -change * 100}
	default:
		return model.Trend{Direction: model.TrendStable}
	}
}
