package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payvista/finhealth/internal/config"
	"github.com/payvista/finhealth/internal/model"
)

func testValidator() *Validator {
	return New(config.ValidationConfig{})
}

// monthlyRecords builds n records one month apart, oldest first, with the
// given gross incomes and zero deductions.
func monthlyRecords(gross ...float64) []model.PayRecord {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	records := make([]model.PayRecord, len(gross))
	for i, g := range gross {
		records[i] = model.PayRecord{
			Timestamp:   base.AddDate(0, i, 0),
			GrossIncome: g,
		}
	}
	return records
}

func TestValidateRejectsShortSeries(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		records := monthlyRecords()
		for i := 0; i < n; i++ {
			records = append(records, model.PayRecord{GrossIncome: 50_000})
		}

		result := testValidator().Validate(records)
		assert.False(t, result.CanProceed, "length %d", n)
		require.NotEmpty(t, result.Errors)
		assert.Equal(t, model.IssueInsufficientData, result.Errors[0].Code)
	}
}

func TestValidateNegativeFieldIsError(t *testing.T) {
	records := monthlyRecords(50_000, 50_000, 50_000)
	records[1].Tax = -100

	result := testValidator().Validate(records)
	assert.False(t, result.CanProceed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.IssueNegativeField, result.Errors[0].Code)
	assert.Equal(t, 1, result.Errors[0].RecordIndex)
	assert.Equal(t, "tax", result.Errors[0].Field)
}

func TestValidateDeductionsExceedGrossIsWarning(t *testing.T) {
	records := monthlyRecords(50_000, 50_000, 50_000)
	records[0].Tax = 40_000
	records[0].OtherDeductions = 20_000

	result := testValidator().Validate(records)
	assert.True(t, result.CanProceed, "warning must not block")

	var found bool
	for _, w := range result.Warnings {
		if w.Code == model.IssueDeductionsExceedGross {
			found = true
			assert.Equal(t, 0, w.RecordIndex)
		}
	}
	assert.True(t, found)

	// A warned record is retained by recovery.
	assert.Len(t, testValidator().Recover(records), 3)
}

func TestValidateImplausibleIncome(t *testing.T) {
	records := monthlyRecords(500, 50_000, 50_000_000)

	result := testValidator().Validate(records)
	assert.True(t, result.CanProceed)

	var codes []model.IssueCode
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, model.IssueImplausibleIncome)
}

func TestValidateFutureDated(t *testing.T) {
	records := monthlyRecords(50_000, 50_000, 50_000)
	records[2].Timestamp = time.Now().AddDate(0, 2, 0)

	result := testValidator().Validate(records)
	assert.True(t, result.CanProceed)

	var found bool
	for _, w := range result.Warnings {
		if w.Code == model.IssueFutureDated {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateExtremeVolatility(t *testing.T) {
	// CV well above 0.5.
	records := monthlyRecords(5_000, 100_000, 5_000, 100_000, 5_000, 100_000)

	result := testValidator().Validate(records)
	var found bool
	for _, w := range result.Warnings {
		if w.Code == model.IssueExtremeVolatility {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateDuplicateMonth(t *testing.T) {
	records := monthlyRecords(50_000, 50_000, 50_000)
	records = append(records, model.PayRecord{
		Timestamp:   records[0].Timestamp.AddDate(0, 0, 10),
		GrossIncome: 50_000,
	})

	result := testValidator().Validate(records)
	var found bool
	for _, w := range result.Warnings {
		if w.Code == model.IssueDuplicateMonth {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRecoverDropsNegativeAndSorts(t *testing.T) {
	records := monthlyRecords(50_000, 51_000, 52_000, 53_000)
	records[1].OtherDeductions = -1

	recovered := testValidator().Recover(records)
	require.Len(t, recovered, 3)

	// Most-recent-first ordering.
	for i := 1; i < len(recovered); i++ {
		assert.True(t, recovered[i-1].Timestamp.After(recovered[i].Timestamp))
	}
	assert.Equal(t, 53_000.0, recovered[0].GrossIncome)
}

func TestRecoverDropsSigmaOutliers(t *testing.T) {
	// Eleven near-identical records plus one wild outlier. With the outlier
	// included, the series deviation is dominated by it, and it sits more
	// than three standard deviations from the mean.
	gross := []float64{
		50_000, 50_100, 49_900, 50_050, 49_950, 50_000,
		50_100, 49_900, 50_050, 49_950, 50_000, 5_000_000,
	}
	records := monthlyRecords(gross...)

	recovered := testValidator().Recover(records)
	assert.Len(t, recovered, 11)
	for _, r := range recovered {
		assert.Less(t, r.GrossIncome, 100_000.0)
	}
}

func TestRecoverFlatSeriesKeepsAll(t *testing.T) {
	records := monthlyRecords(50_000, 50_000, 50_000, 50_000)
	assert.Len(t, testValidator().Recover(records), 4)
}

func TestRecoverSkipsOutlierFilterBelowMinimum(t *testing.T) {
	// Under three survivors the sigma filter must not run.
	records := monthlyRecords(50_000, 5_000_000)
	recovered := testValidator().Recover(records)
	assert.Len(t, recovered, 2)
}
