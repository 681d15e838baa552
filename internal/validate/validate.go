// Package validate sanitizes raw pay-record input before any analysis runs.
// Validation classifies findings as blocking errors or warnings; recovery
// filters the series down to a snapshot the analyzers can trust.
package validate

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/payvista/finhealth/internal/config"
	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/stats"
)

// Validator checks pay-record series against plausibility rules and recovers
// an analyzable snapshot from partially corrupted input. It holds no state
// beyond its configuration.
type Validator struct {
	cfg config.ValidationConfig
}

// New creates a Validator. Zero-valued config fields fall back to the
// documented defaults.
func New(cfg config.ValidationConfig) *Validator {
	if cfg.MinRecords <= 0 {
		cfg.MinRecords = 3
	}
	if cfg.MinPlausibleIncome <= 0 {
		cfg.MinPlausibleIncome = 1_000
	}
	if cfg.MaxPlausibleIncome <= 0 {
		cfg.MaxPlausibleIncome = 10_000_000
	}
	if cfg.VolatilityThreshold <= 0 {
		cfg.VolatilityThreshold = 0.5
	}
	if cfg.OutlierSigma <= 0 {
		cfg.OutlierSigma = 3
	}
	return &Validator{cfg: cfg}
}

// numericFields maps field names to accessors, used for negative-value checks.
var numericFields = []struct {
	name string
	get  func(model.PayRecord) float64
}{
	{"gross_income", func(r model.PayRecord) float64 { return r.GrossIncome }},
	{"tax", func(r model.PayRecord) float64 { return r.Tax }},
	{"other_deductions", func(r model.PayRecord) float64 { return r.OtherDeductions }},
	{"retirement_contribution", func(r model.PayRecord) float64 { return r.RetirementContribution }},
}

// Validate checks the series and returns every finding. CanProceed is true
// iff no blocking errors were found; warnings never block.
func (v *Validator) Validate(records []model.PayRecord) model.ValidationResult {
	var result model.ValidationResult

	if len(records) < v.cfg.MinRecords {
		result.Errors = append(result.Errors, model.Issue{
			Code:        model.IssueInsufficientData,
			RecordIndex: -1,
			Message:     fmt.Sprintf("need at least %d records, got %d", v.cfg.MinRecords, len(records)),
		})
	}

	now := time.Now()
	for i, r := range records {
		for _, f := range numericFields {
			if f.get(r) < 0 {
				result.Errors = append(result.Errors, model.Issue{
					Code:        model.IssueNegativeField,
					RecordIndex: i,
					Field:       f.name,
					Message:     fmt.Sprintf("%s is negative (%.2f)", f.name, f.get(r)),
				})
			}
		}

		if r.GrossIncome < v.cfg.MinPlausibleIncome || r.GrossIncome > v.cfg.MaxPlausibleIncome {
			result.Warnings = append(result.Warnings, model.Issue{
				Code:        model.IssueImplausibleIncome,
				RecordIndex: i,
				Field:       "gross_income",
				Message: fmt.Sprintf("gross income %.2f outside plausible band [%.0f, %.0f]",
					r.GrossIncome, v.cfg.MinPlausibleIncome, v.cfg.MaxPlausibleIncome),
			})
		}
		if r.TotalDeductions() > r.GrossIncome {
			result.Warnings = append(result.Warnings, model.Issue{
				Code:        model.IssueDeductionsExceedGross,
				RecordIndex: i,
				Message: fmt.Sprintf("deductions %.2f exceed gross income %.2f",
					r.TotalDeductions(), r.GrossIncome),
			})
		}
		if r.Timestamp.After(now) {
			result.Warnings = append(result.Warnings, model.Issue{
				Code:        model.IssueFutureDated,
				RecordIndex: i,
				Field:       "timestamp",
				Message:     fmt.Sprintf("record dated %s is in the future", r.Timestamp.Format("2006-01-02")),
			})
		}
	}

	result.Warnings = append(result.Warnings, v.crossRecordWarnings(records)...)
	result.CanProceed = len(result.Errors) == 0

	if len(result.Warnings) > 0 {
		zap.L().Warn("validate: warnings on record series",
			zap.Int("records", len(records)),
			zap.Int("warnings", len(result.Warnings)),
		)
	}

	return result
}

// crossRecordWarnings checks findings that span the whole series: extreme
// income volatility and duplicate calendar months.
func (v *Validator) crossRecordWarnings(records []model.PayRecord) []model.Issue {
	var warnings []model.Issue

	if cv := stats.CoefficientOfVariation(grossSeries(records)); cv > v.cfg.VolatilityThreshold {
		warnings = append(warnings, model.Issue{
			Code:        model.IssueExtremeVolatility,
			RecordIndex: -1,
			Field:       "gross_income",
			Message:     fmt.Sprintf("income volatility %.2f exceeds %.2f", cv, v.cfg.VolatilityThreshold),
		})
	}

	seen := make(map[string]int, len(records))
	for _, r := range records {
		seen[r.MonthKey()]++
	}
	months := make([]string, 0, len(seen))
	for m, n := range seen {
		if n > 1 {
			months = append(months, m)
		}
	}
	sort.Strings(months)
	for _, m := range months {
		warnings = append(warnings, model.Issue{
			Code:        model.IssueDuplicateMonth,
			RecordIndex: -1,
			Message:     fmt.Sprintf("%d records in month %s", seen[m], m),
		})
	}

	return warnings
}

// Recover filters the series into the snapshot analysis runs on: records
// with negative fields are dropped, the remainder is sorted most-recent-first,
// and when at least MinRecords survive, gross-income outliers beyond
// OutlierSigma standard deviations of the mean are dropped as well.
func (v *Validator) Recover(records []model.PayRecord) []model.PayRecord {
	kept := make([]model.PayRecord, 0, len(records))
	for _, r := range records {
		if hasNegativeField(r) {
			continue
		}
		kept = append(kept, r)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.After(kept[j].Timestamp)
	})

	if len(kept) >= v.cfg.MinRecords {
		kept = v.dropOutliers(kept)
	}

	if dropped := len(records) - len(kept); dropped > 0 {
		zap.L().Info("validate: recovery dropped records",
			zap.Int("input", len(records)),
			zap.Int("kept", len(kept)),
			zap.Int("dropped", dropped),
		)
	}

	return kept
}

// dropOutliers removes records whose gross income deviates from the series
// mean by more than OutlierSigma standard deviations. A zero deviation means
// a flat series, which has no outliers.
func (v *Validator) dropOutliers(records []model.PayRecord) []model.PayRecord {
	gross := grossSeries(records)
	mean := stats.Mean(gross)
	dev := stats.StdDev(gross)
	if dev == 0 {
		return records
	}

	kept := records[:0:0]
	for _, r := range records {
		if abs(r.GrossIncome-mean) > v.cfg.OutlierSigma*dev {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func hasNegativeField(r model.PayRecord) bool {
	for _, f := range numericFields {
		if f.get(r) < 0 {
			return true
		}
	}
	return false
}

func grossSeries(records []model.PayRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.GrossIncome
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
