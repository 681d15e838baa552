package benchmark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payvista/finhealth/internal/config"
	"github.com/payvista/finhealth/internal/model"
)

func testAnalyzer() *Analyzer {
	return New(config.BenchmarkConfig{})
}

func monthlyRecords(gross ...float64) []model.PayRecord {
	base := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	records := make([]model.PayRecord, len(gross))
	for i, g := range gross {
		records[i] = model.PayRecord{
			Timestamp:   base.AddDate(0, -i, 0),
			GrossIncome: g,
		}
	}
	return records
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name          string
		user          float64
		reference     float64
		lowerIsBetter bool
		wantPct       float64
		wantResult    model.ComparisonResult
		wantDelta     float64
	}{
		{"well above", 120, 100, false, 60, model.ComparisonAboveAverage, 20},
		{"well below", 60, 100, false, 30, model.ComparisonBelowAverage, 40},
		{"within band high", 105, 100, false, 52.5, model.ComparisonAverage, 0},
		{"within band low", 95, 100, false, 47.5, model.ComparisonAverage, 0},
		{"percentile floor", 1, 100, false, 5, model.ComparisonBelowAverage, 99},
		{"percentile ceiling", 1000, 100, false, 95, model.ComparisonAboveAverage, 900},
		// lowerIsBetter inverts the classification but not the percentile.
		{"low tax is above average", 0.10, 0.20, true, 25, model.ComparisonAboveAverage, 50},
		{"high tax is below average", 0.30, 0.20, true, 75, model.ComparisonBelowAverage, 50},
		{"zero reference guards", 10, 0, false, 5, model.ComparisonBelowAverage, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, cmp := Compare(tt.user, tt.reference, tt.lowerIsBetter)
			assert.InDelta(t, tt.wantPct, pct, 1e-9)
			assert.Equal(t, tt.wantResult, cmp.Result)
			assert.InDelta(t, tt.wantDelta, cmp.DeltaPct, 1e-6)
		})
	}
}

func TestAnalyzeRequiresThreeRecords(t *testing.T) {
	assert.Nil(t, testAnalyzer().Analyze(monthlyRecords(50000, 50000)))
}

func TestAnalyzeProducesStandardBenchmarks(t *testing.T) {
	// Three months of 50,000 with 10,000 tax: annualized 600,000 salary
	// (75% of the 800,000 reference), 20% effective tax rate.
	records := monthlyRecords(50000, 50000, 50000)
	for i := range records {
		records[i].Tax = 10000
	}

	benchmarks := testAnalyzer().Analyze(records)
	require.Len(t, benchmarks, 3, "growth benchmark needs six records")

	byCategory := make(map[model.BenchmarkCategory]model.BenchmarkData)
	for _, b := range benchmarks {
		byCategory[b.Category] = b
	}

	salary := byCategory[model.BenchmarkAnnualSalary]
	assert.InDelta(t, 600000, salary.UserValue, 1e-6)
	assert.Equal(t, 800000.0, salary.BenchmarkValue)
	assert.Equal(t, model.ComparisonBelowAverage, salary.Comparison.Result)
	assert.InDelta(t, 37.5, salary.Percentile, 1e-9)

	tax := byCategory[model.BenchmarkEffectiveTaxRate]
	assert.InDelta(t, 0.20, tax.UserValue, 1e-9)
	assert.Equal(t, model.ComparisonAverage, tax.Comparison.Result)

	// Savings rate = 0.30 * net ratio = 0.30 * 0.8 = 0.24, above the 0.20
	// reference by 20%.
	savings := byCategory[model.BenchmarkSavingsRate]
	assert.InDelta(t, 0.24, savings.UserValue, 1e-9)
	assert.Equal(t, model.ComparisonAboveAverage, savings.Comparison.Result)

	// Percentiles always land inside [5,95].
	for _, b := range benchmarks {
		assert.GreaterOrEqual(t, b.Percentile, 5.0)
		assert.LessOrEqual(t, b.Percentile, 95.0)
	}
}

func TestAnalyzeIncludesGrowthWithSixRecords(t *testing.T) {
	// Recent mean 55,000 vs previous 50,000: +10% growth against the 5%
	// reference.
	records := monthlyRecords(55000, 55000, 55000, 50000, 50000, 50000)

	benchmarks := testAnalyzer().Analyze(records)
	require.Len(t, benchmarks, 4)

	var growth model.BenchmarkData
	var found bool
	for _, b := range benchmarks {
		if b.Category == model.BenchmarkIncomeGrowth {
			growth, found = b, true
		}
	}
	require.True(t, found)
	assert.InDelta(t, 0.10, growth.UserValue, 1e-9)
	assert.Equal(t, model.ComparisonAboveAverage, growth.Comparison.Result)
}
