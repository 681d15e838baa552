// Package benchmark compares user metrics against static reference values.
// References are configuration constants, not a live data feed, and the
// percentile is a simplified ratio-based placeholder rather than a position
// in a real distribution.
package benchmark

import (
	"go.uber.org/zap"

	"github.com/payvista/finhealth/internal/config"
	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/stats"
)

// minRecords below which no benchmarks are produced.
const minRecords = 3

// comparisonBand is the ratio distance from 1.0 inside which a value counts
// as average.
const comparisonBand = 0.1

// Analyzer compares the snapshot's derived metrics against reference values.
type Analyzer struct {
	cfg config.BenchmarkConfig
}

// New creates an Analyzer. Zero-valued references fall back to the defaults.
func New(cfg config.BenchmarkConfig) *Analyzer {
	if cfg.AnnualSalary <= 0 {
		cfg.AnnualSalary = 800_000
	}
	if cfg.EffectiveTaxRate <= 0 {
		cfg.EffectiveTaxRate = 0.20
	}
	if cfg.SavingsRate <= 0 {
		cfg.SavingsRate = 0.20
	}
	if cfg.IncomeGrowth <= 0 {
		cfg.IncomeGrowth = 0.05
	}
	return &Analyzer{cfg: cfg}
}

// Analyze produces the four standard benchmarks from a most-recent-first
// snapshot. Requires at least minRecords records; returns nil otherwise.
func (a *Analyzer) Analyze(records []model.PayRecord) []model.BenchmarkData {
	if len(records) < minRecords {
		return nil
	}

	var totalGross, totalTax, totalDeductions float64
	for _, r := range records {
		totalGross += r.GrossIncome
		totalTax += r.Tax
		totalDeductions += r.TotalDeductions()
	}

	annualizedSalary := totalGross * (12 / float64(len(records)))
	effectiveTaxRate := stats.SafeRatio(totalTax, totalGross)
	savingsRate := 0.30 * stats.SafeRatio(totalGross-totalDeductions, totalGross)
	if savingsRate < 0 {
		savingsRate = 0
	}

	benchmarks := []model.BenchmarkData{
		a.build(model.BenchmarkAnnualSalary, annualizedSalary, a.cfg.AnnualSalary, false),
		a.build(model.BenchmarkEffectiveTaxRate, effectiveTaxRate, a.cfg.EffectiveTaxRate, true),
		a.build(model.BenchmarkSavingsRate, savingsRate, a.cfg.SavingsRate, false),
	}

	// Income growth needs six records for the 3-vs-3 window.
	if growth, ok := incomeGrowth(records); ok {
		benchmarks = append(benchmarks, a.build(model.BenchmarkIncomeGrowth, growth, a.cfg.IncomeGrowth, false))
	}

	zap.L().Debug("benchmark: analysis complete",
		zap.Int("records", len(records)),
		zap.Int("benchmarks", len(benchmarks)),
	)

	return benchmarks
}

func (a *Analyzer) build(category model.BenchmarkCategory, user, reference float64, lowerIsBetter bool) model.BenchmarkData {
	percentile, comparison := Compare(user, reference, lowerIsBetter)
	return model.BenchmarkData{
		Category:       category,
		UserValue:      user,
		BenchmarkValue: reference,
		Percentile:     percentile,
		Comparison:     comparison,
	}
}

// Compare positions a user value against a reference. The percentile is
// clamp(ratio*50, 5, 95), a simplification rather than a statistical
// percentile. The comparison classifies ratios more than comparisonBand away
// from 1.0; when lowerIsBetter, the classification is inverted so a lower
// value still reads as above average.
func Compare(user, reference float64, lowerIsBetter bool) (float64, model.Comparison) {
	ratio := stats.SafeRatio(user, reference)
	percentile := stats.Clamp(ratio*50, 5, 95)

	var comparison model.Comparison
	switch {
	case ratio > 1+comparisonBand:
		comparison = model.Comparison{Result: model.ComparisonAboveAverage, DeltaPct: (ratio - 1) * 100}
	case ratio < 1-comparisonBand:
		comparison = model.Comparison{Result: model.ComparisonBelowAverage, DeltaPct: (1 - ratio) * 100}
	default:
		comparison = model.Comparison{Result: model.ComparisonAverage}
	}

	if lowerIsBetter && comparison.Result != model.ComparisonAverage {
		if comparison.Result == model.ComparisonAboveAverage {
			comparison.Result = model.ComparisonBelowAverage
		} else {
			comparison.Result = model.ComparisonAboveAverage
		}
	}

	return percentile, comparison
}

// incomeGrowth mirrors the category calculator's 3-vs-3 growth window.
func incomeGrowth(records []model.PayRecord) (float64, bool) {
	const window = 3
	if len(records) < 2*window {
		return 0, false
	}

	var recent, previous float64
	for i := 0; i < window; i++ {
		recent += records[i].GrossIncome
		previous += records[window+i].GrossIncome
	}
	recent /= window
	previous /= window

	if previous <= 0 {
		return 0, false
	}
	return (recent - previous) / previous, true
}
