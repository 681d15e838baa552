// Package predict produces regression-based income, tax, and retirement
// projections from a recovered pay-record snapshot. The three projections are
// independent; each appends at most one insight.
package predict

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/stats"
)

const (
	// minRegressionRecords gates the income projection; shorter series give
	// a regression too noisy to surface.
	minRegressionRecords = 6

	// Retirement future-value assumptions: fixed annual growth over a fixed
	// horizon.
	retirementGrowthRate = 0.08
	retirementYears      = 25

	// highTaxRate flags the tax projection as high risk.
	highTaxRate = 0.30

	// minContributionRate below which retirement readiness is high risk.
	minContributionRate = 0.10
)

// Analyzer computes predictive insights. It is stateless; construct one per
// use or share freely.
type Analyzer struct{}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the three projections over a most-recent-first snapshot and
// returns the insights that had enough data to compute.
func (a *Analyzer) Analyze(records []model.PayRecord) []model.PredictiveInsight {
	var insights []model.PredictiveInsight

	if in, ok := a.incomeProjection(records); ok {
		insights = append(insights, in)
	}
	if in, ok := a.taxProjection(records); ok {
		insights = append(insights, in)
	}
	if in, ok := a.retirementProjection(records); ok {
		insights = append(insights, in)
	}

	zap.L().Debug("predict: analysis complete",
		zap.Int("records", len(records)),
		zap.Int("insights", len(insights)),
	)

	return insights
}

// incomeProjection fits an ordinary least-squares line to gross income in
// chronological order and projects the next period. Requires at least
// minRegressionRecords records.
func (a *Analyzer) incomeProjection(records []model.PayRecord) (model.PredictiveInsight, bool) {
	if len(records) < minRegressionRecords {
		return model.PredictiveInsight{}, false
	}

	// Snapshot order is most-recent-first; regress oldest-first so the slope
	// points forward in time.
	series := make([]float64, len(records))
	for i, r := range records {
		series[len(records)-1-i] = r.GrossIncome
	}

	slope, intercept, ok := stats.LinearFit(series)
	if !ok {
		return model.PredictiveInsight{}, false
	}

	predicted := slope*float64(len(series)) + intercept
	currentIncome := records[0].GrossIncome

	confidence := 0.3
	if currentIncome > 0 {
		confidence = stats.Clamp(1-math.Abs(slope)/currentIncome, 0.3, 0.9)
	}

	risk := model.RiskLow
	recommendation := "Income is on a stable or rising path. Keep current trajectory."
	if slope < 0 {
		risk = model.RiskMedium
		recommendation = "Projected income is declining. Review income sources before committing new fixed expenses."
	}

	return model.PredictiveInsight{
		Type:           model.InsightSalaryGrowth,
		Confidence:     confidence,
		Timeframe:      "next month",
		ExpectedValue:  predicted,
		Recommendation: recommendation,
		RiskLevel:      risk,
	}, true
}

// taxProjection annualizes the window's income and applies its effective tax
// rate to project annual tax liability.
func (a *Analyzer) taxProjection(records []model.PayRecord) (model.PredictiveInsight, bool) {
	if len(records) == 0 {
		return model.PredictiveInsight{}, false
	}

	var totalGross, totalTax float64
	for _, r := range records {
		totalGross += r.GrossIncome
		totalTax += r.Tax
	}
	if totalGross <= 0 {
		return model.PredictiveInsight{}, false
	}

	effectiveRate := totalTax / totalGross
	annualizedIncome := totalGross * (12 / float64(len(records)))
	projectedTax := annualizedIncome * effectiveRate

	risk := model.RiskLow
	recommendation := fmt.Sprintf("Effective tax rate is %.1f%%. No immediate action needed.", effectiveRate*100)
	if effectiveRate > highTaxRate {
		risk = model.RiskHigh
		recommendation = fmt.Sprintf("Effective tax rate is %.1f%%. Review declarations and exemptions for savings.", effectiveRate*100)
	}

	return model.PredictiveInsight{
		Type:           model.InsightTaxProjection,
		Confidence:     0.8,
		Timeframe:      "next 12 months",
		ExpectedValue:  projectedTax,
		Recommendation: recommendation,
		RiskLevel:      risk,
	}, true
}

// retirementProjection compounds the annualized retirement contribution at a
// fixed growth rate over a fixed horizon (future value of an annuity).
func (a *Analyzer) retirementProjection(records []model.PayRecord) (model.PredictiveInsight, bool) {
	if len(records) == 0 {
		return model.PredictiveInsight{}, false
	}

	var totalGross, totalContribution float64
	for _, r := range records {
		totalGross += r.GrossIncome
		totalContribution += r.RetirementContribution
	}

	annualContribution := totalContribution * (12 / float64(len(records)))
	futureValue := FutureValue(annualContribution, retirementGrowthRate, retirementYears)

	contributionRate := stats.SafeRatio(totalContribution, totalGross)
	risk := model.RiskLow
	recommendation := "Retirement contributions are on track."
	if contributionRate < minContributionRate {
		risk = model.RiskHigh
		recommendation = fmt.Sprintf(
			"Retirement contributions are %.1f%% of income; consider raising them toward %.0f%%.",
			contributionRate*100, minContributionRate*100)
	}

	return model.PredictiveInsight{
		Type:           model.InsightRetirementReadiness,
		Confidence:     0.7,
		Timeframe:      fmt.Sprintf("%d years", retirementYears),
		ExpectedValue:  futureValue,
		Recommendation: recommendation,
		RiskLevel:      risk,
	}, true
}

// FutureValue returns the future value of an annual contribution compounded
// at rate g over y years: contribution * ((1+g)^y - 1) / g. A non-positive
// rate degenerates to simple accumulation.
func FutureValue(annualContribution, g float64, y int) float64 {
	if annualContribution <= 0 {
		return 0
	}
	if g <= 0 {
		return annualContribution * float64(y)
	}
	return annualContribution * (math.Pow(1+g, float64(y)) - 1) / g
}
