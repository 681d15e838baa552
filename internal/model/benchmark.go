package model

// BenchmarkCategory identifies which metric a benchmark compares.
type BenchmarkCategory string

const (
	BenchmarkAnnualSalary     BenchmarkCategory = "annual_salary"
	BenchmarkEffectiveTaxRate BenchmarkCategory = "effective_tax_rate"
	BenchmarkSavingsRate      BenchmarkCategory = "savings_rate"
	BenchmarkIncomeGrowth     BenchmarkCategory = "income_growth"
)

// ComparisonResult classifies a user value against a reference value.
type ComparisonResult string

const (
	ComparisonAboveAverage ComparisonResult = "above_average"
	ComparisonBelowAverage ComparisonResult = "below_average"
	ComparisonAverage      ComparisonResult = "average"
)

// Comparison pairs a classification with the percentage delta from the
// reference. DeltaPct is zero when the result is average.
type Comparison struct {
	Result   ComparisonResult `json:"result"`
	DeltaPct float64          `json:"delta_pct,omitempty"`
}

// BenchmarkData compares one user metric against a static reference value.
// The percentile is a simplified ratio-based placeholder, not a position in a
// real distribution; see benchmark.Compare.
type BenchmarkData struct {
	Category       BenchmarkCategory `json:"category"`
	UserValue      float64           `json:"user_value"`
	BenchmarkValue float64           `json:"benchmark_value"`
	Percentile     float64           `json:"percentile"` // clamped to [5,95]
	Comparison     Comparison        `json:"comparison"`
}
