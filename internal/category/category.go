// Package category implements the five independent financial-health
// calculators and the weighted aggregation that turns them into a composite
// score. All calculators are pure functions over a recovered, most-recent-first
// record snapshot.
package category

import (
	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/stats"
)

// Weights assigns each category its share of the overall score. The values
// sum to exactly 1.0.
var Weights = map[model.CategoryID]float64{
	model.CategoryIncomeStability:     0.25,
	model.CategorySavingsRate:         0.30,
	model.CategoryDeductionEfficiency: 0.20,
	model.CategoryIncomeGrowth:        0.15,
	model.CategoryRisk:                0.10,
}

// names maps category ids to display names.
var names = map[model.CategoryID]string{
	model.CategoryIncomeStability:     "Income Stability",
	model.CategorySavingsRate:         "Savings Rate",
	model.CategoryDeductionEfficiency: "Deduction Efficiency",
	model.CategoryIncomeGrowth:        "Income Growth",
	model.CategoryRisk:                "Risk Management",
}

// Calculator computes one health category from the record snapshot.
type Calculator func(records []model.PayRecord) model.HealthCategory

// All runs the five calculators in their fixed order and returns the five
// categories together, the only way they are ever produced.
func All(records []model.PayRecord) []model.HealthCategory {
	calcs := []Calculator{
		IncomeStability,
		SavingsRate,
		DeductionEfficiency,
		IncomeGrowth,
		Risk,
	}
	out := make([]model.HealthCategory, 0, len(calcs))
	for _, c := range calcs {
		out = append(out, c(records))
	}
	return out
}

// IncomeStability scores how steady gross income is, measured as the
// coefficient of variation of the series.
func IncomeStability(records []model.PayRecord) model.HealthCategory {
	vol := stats.CoefficientOfVariation(grossSeries(records))

	var score float64
	var status model.CategoryStatus
	switch {
	case vol < 0.10:
		score, status = 95, model.StatusExcellent
	case vol < 0.15:
		score, status = 80, model.StatusGood
	case vol < 0.20:
		score, status = 60, model.StatusFair
	default:
		score, status = 30, model.StatusPoor
	}

	return build(model.CategoryIncomeStability, score, status)
}

// SavingsRate estimates what share of gross income is saveable. Savings are
// inferred as 30% of net income, not tracked directly.
func SavingsRate(records []model.PayRecord) model.HealthCategory {
	var totalGross, totalDeductions float64
	for _, r := range records {
		totalGross += r.GrossIncome
		totalDeductions += r.TotalDeductions()
	}

	// rate = max(0, netIncome*0.30) / totalGross. Computed ratio-first so a
	// series with zero deductions lands exactly on the 0.30 band boundary.
	netIncome := totalGross - totalDeductions
	rate := 0.30 * stats.SafeRatio(netIncome, totalGross)
	if rate < 0 {
		rate = 0
	}

	var score float64
	var status model.CategoryStatus
	switch {
	case rate >= 0.30:
		score, status = 95, model.StatusExcellent
	case rate >= 0.20:
		score, status = 80, model.StatusGood
	case rate >= 0.10:
		score, status = 60, model.StatusFair
	default:
		score, status = 30, model.StatusPoor
	}

	return build(model.CategorySavingsRate, score, status)
}

// DeductionEfficiency scores the share of gross income lost to deductions.
// Lower is better.
func DeductionEfficiency(records []model.PayRecord) model.HealthCategory {
	ratio := deductionRatio(records)

	var score float64
	var status model.CategoryStatus
	switch {
	case ratio <= 0.20:
		score, status = 95, model.StatusExcellent
	case ratio <= 0.30:
		score, status = 80, model.StatusGood
	case ratio <= 0.40:
		score, status = 60, model.StatusFair
	default:
		score, status = 30, model.StatusPoor
	}

	return build(model.CategoryDeductionEfficiency, score, status)
}

// growthWindow is the number of records compared on each side of the
// income-growth and trend calculations.
const growthWindow = 3

// IncomeGrowth compares the mean gross income of the three most recent
// records against the three before them. With fewer than six records the
// category is neutral (50, fair).
func IncomeGrowth(records []model.PayRecord) model.HealthCategory {
	growthRate, ok := growthRate(records)
	if !ok {
		return build(model.CategoryIncomeGrowth, 50, model.StatusFair)
	}

	var score float64
	var status model.CategoryStatus
	switch {
	case growthRate > 0.10:
		score, status = 95, model.StatusExcellent
	case growthRate > 0.05:
		score, status = 80, model.StatusGood
	case growthRate > 0:
		score, status = 60, model.StatusFair
	default:
		score, status = 30, model.StatusPoor
	}

	return build(model.CategoryIncomeGrowth, score, status)
}

// Risk combines income volatility with excess deduction load into a single
// risk score, then inverts it into a health score.
func Risk(records []model.PayRecord) model.HealthCategory {
	vol := stats.CoefficientOfVariation(grossSeries(records))
	excessDeductions := deductionRatio(records) - 0.3
	if excessDeductions < 0 {
		excessDeductions = 0
	}

	riskScore := vol*50 + excessDeductions*100
	healthScore := stats.Clamp(100-riskScore, 0, 100)

	var status model.CategoryStatus
	switch {
	case healthScore > 80:
		status = model.StatusExcellent
	case healthScore > 60:
		status = model.StatusGood
	case healthScore > 40:
		status = model.StatusFair
	default:
		status = model.StatusPoor
	}

	return build(model.CategoryRisk, healthScore, status)
}

// growthRate returns the relative change between the mean of the most recent
// growthWindow records and the mean of the growthWindow before them. ok is
// false when fewer than 2*growthWindow records exist or the earlier mean is
// not positive.
func growthRate(records []model.PayRecord) (float64, bool) {
	if len(records) < 2*growthWindow {
		return 0, false
	}
	recent := stats.Mean(grossSeries(records[:growthWindow]))
	previous := stats.Mean(grossSeries(records[growthWindow : 2*growthWindow]))
	if previous <= 0 {
		return 0, false
	}
	return (recent - previous) / previous, true
}

func deductionRatio(records []model.PayRecord) float64 {
	var totalGross, totalDeductions float64
	for _, r := range records {
		totalGross += r.GrossIncome
		totalDeductions += r.TotalDeductions()
	}
	return stats.SafeRatio(totalDeductions, totalGross)
}

func grossSeries(records []model.PayRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.GrossIncome
	}
	return out
}

// build assembles a HealthCategory with its fixed weight, recommendation
// text, and the deterministic action items for the status bucket.
func build(id model.CategoryID, score float64, status model.CategoryStatus) model.HealthCategory {
	return model.HealthCategory{
		ID:             id,
		Name:           names[id],
		Score:          score,
		Weight:         Weights[id],
		Status:         status,
		Recommendation: recommendation(id, status),
		ActionItems:    actionItems(id, status),
	}
}
