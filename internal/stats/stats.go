// Package stats holds the small numeric toolkit shared by the validator,
// category calculators, and predictive analyzer. Every ratio is defined as 0
// when its denominator is not positive, so callers never see a
// division-by-zero panic or an Inf/NaN propagating into scores.
package stats

import "math"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values, or 0 when
// fewer than two values are given.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// CoefficientOfVariation returns stddev/mean, the volatility of a series.
// Returns 0 when the mean is not positive.
func CoefficientOfVariation(values []float64) float64 {
	mean := Mean(values)
	if mean <= 0 {
		return 0
	}
	return StdDev(values) / mean
}

// SafeRatio returns num/denom, or 0 when denom is not positive.
func SafeRatio(num, denom float64) float64 {
	if denom <= 0 {
		return 0
	}
	return num / denom
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LinearFit computes the ordinary least-squares line y = slope*x + intercept
// for y regressed against its index 0..n-1. ok is false when the series has
// fewer than two points or the denominator degenerates.
func LinearFit(y []float64) (slope, intercept float64, ok bool) {
	n := float64(len(y))
	if len(y) < 2 {
		return 0, 0, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}
