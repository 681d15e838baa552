package predict

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payvista/finhealth/internal/model"
)

// linearRecords builds a most-recent-first series whose gross income follows
// y = a*i + b in chronological order (i = 0 is the oldest record).
func linearRecords(n int, a, b float64) []model.PayRecord {
	base := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	records := make([]model.PayRecord, n)
	for i := 0; i < n; i++ {
		chron := n - 1 - i // records[0] is most recent
		records[i] = model.PayRecord{
			Timestamp:   base.AddDate(0, -i, 0),
			GrossIncome: a*float64(chron) + b,
		}
	}
	return records
}

func findInsight(insights []model.PredictiveInsight, typ model.InsightType) (model.PredictiveInsight, bool) {
	for _, in := range insights {
		if in.Type == typ {
			return in, true
		}
	}
	return model.PredictiveInsight{}, false
}

func TestIncomeProjectionExactOnLinearSeries(t *testing.T) {
	// y = 500*i + 40000 over 8 records; predicted next = 500*8 + 40000.
	records := linearRecords(8, 500, 40000)

	insights := New().Analyze(records)
	in, ok := findInsight(insights, model.InsightSalaryGrowth)
	require.True(t, ok)

	assert.InDelta(t, 44000, in.ExpectedValue, 1e-6)
	assert.Equal(t, model.RiskLow, in.RiskLevel)

	// Confidence = clamp(1 - |slope|/currentIncome, 0.3, 0.9).
	current := records[0].GrossIncome
	want := math.Min(0.9, math.Max(0.3, 1-500/current))
	assert.InDelta(t, want, in.Confidence, 1e-9)
}

func TestIncomeProjectionRequiresSixRecords(t *testing.T) {
	records := linearRecords(5, 500, 40000)
	insights := New().Analyze(records)
	_, ok := findInsight(insights, model.InsightSalaryGrowth)
	assert.False(t, ok, "no salary insight under six records")
}

func TestIncomeProjectionDecliningIsMediumRisk(t *testing.T) {
	records := linearRecords(6, -1000, 60000)
	insights := New().Analyze(records)
	in, ok := findInsight(insights, model.InsightSalaryGrowth)
	require.True(t, ok)
	assert.Equal(t, model.RiskMedium, in.RiskLevel)
	assert.Less(t, in.ExpectedValue, 60000.0)
}

func TestTaxProjection(t *testing.T) {
	// 6 months, 50,000 gross, 10,000 tax each: rate 0.20, annualized income
	// 600,000, projected tax 120,000.
	records := linearRecords(6, 0, 50000)
	for i := range records {
		records[i].Tax = 10000
	}

	insights := New().Analyze(records)
	in, ok := findInsight(insights, model.InsightTaxProjection)
	require.True(t, ok)

	assert.InDelta(t, 120000, in.ExpectedValue, 1e-6)
	assert.Equal(t, 0.8, in.Confidence)
	assert.Equal(t, model.RiskLow, in.RiskLevel)
}

func TestTaxProjectionHighRateFlagged(t *testing.T) {
	records := linearRecords(6, 0, 50000)
	for i := range records {
		records[i].Tax = 17500 // 35% effective rate
	}

	insights := New().Analyze(records)
	in, ok := findInsight(insights, model.InsightTaxProjection)
	require.True(t, ok)
	assert.Equal(t, model.RiskHigh, in.RiskLevel)
}

func TestRetirementProjection(t *testing.T) {
	// 12 months, 5,000/month contribution: annual 60,000.
	records := linearRecords(12, 0, 50000)
	for i := range records {
		records[i].RetirementContribution = 5000
	}

	insights := New().Analyze(records)
	in, ok := findInsight(insights, model.InsightRetirementReadiness)
	require.True(t, ok)

	want := 60000 * (math.Pow(1.08, 25) - 1) / 0.08
	assert.InDelta(t, want, in.ExpectedValue, 1e-6)
	// 10% of income: not high risk.
	assert.Equal(t, model.RiskLow, in.RiskLevel)
}

func TestRetirementLowContributionIsHighRisk(t *testing.T) {
	records := linearRecords(6, 0, 50000)
	for i := range records {
		records[i].RetirementContribution = 2000 // 4% of income
	}

	insights := New().Analyze(records)
	in, ok := findInsight(insights, model.InsightRetirementReadiness)
	require.True(t, ok)
	assert.Equal(t, model.RiskHigh, in.RiskLevel)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	assert.Empty(t, New().Analyze(nil))
}

func TestFutureValue(t *testing.T) {
	assert.Zero(t, FutureValue(0, 0.08, 25))
	assert.Zero(t, FutureValue(-100, 0.08, 25))
	// Zero growth degenerates to simple accumulation.
	assert.Equal(t, 250000.0, FutureValue(10000, 0, 25))
	// One year at 8%: exactly the contribution.
	assert.InDelta(t, 10000, FutureValue(10000, 0.08, 1), 1e-6)
}
