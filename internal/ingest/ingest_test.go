package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestReadCSV(t *testing.T) {
	input := `date,gross_income,tax,other_deductions,retirement_contribution
2026-01-15,50000,10000,2500,5000
2026-02-15,51000,10200,2550,5100
`
	records, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), records[0].Timestamp)
	assert.InDelta(t, 50_000, records[0].GrossIncome, 1e-9)
	assert.InDelta(t, 10_000, records[0].Tax, 1e-9)
	assert.InDelta(t, 2_500, records[0].OtherDeductions, 1e-9)
	assert.InDelta(t, 5_000, records[0].RetirementContribution, 1e-9)
}

func TestReadCSVHeaderAliases(t *testing.T) {
	input := `Pay Date,Gross Pay,Income Tax,Deductions,Pension
01/15/2026,"50,000",10000,,5000
`
	records, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), records[0].Timestamp)
	assert.InDelta(t, 50_000, records[0].GrossIncome, 1e-9)
	assert.Zero(t, records[0].OtherDeductions)
	assert.InDelta(t, 5_000, records[0].RetirementContribution, 1e-9)
}

func TestReadCSVMissingRequiredColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no date", "gross_income,tax\n50000,10000\n", "no date column"},
		{"no gross", "date,tax\n2026-01-15,10000\n", "no gross income column"},
		{"empty", "", "empty csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadCSVBadRow(t *testing.T) {
	input := `date,gross_income
2026-01-15,fifty thousand
`
	_, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestReadCSVBadDate(t *testing.T) {
	input := `date,gross_income
someday,50000
`
	_, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized date")
}

func TestReadCSVCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "date,gross_income\n2026-01-15,50000\n"
	_, err := ReadCSV(ctx, strings.NewReader(input))
	require.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	input := `[
		{"timestamp":"2026-01-15T00:00:00Z","gross_income":50000,"tax":10000,"other_deductions":2500,"retirement_contribution":5000},
		{"timestamp":"2026-02-15T00:00:00Z","gross_income":51000,"tax":10200,"other_deductions":2550,"retirement_contribution":5100}
	]`
	records, err := ReadJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 51_000, records[1].GrossIncome, 1e-9)
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"not":"an array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json")
}

func writeTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Records")
	require.NoError(t, err)

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}

	path := filepath.Join(t.TempDir(), "records.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeTestXLSX(t, [][]string{
		{"date", "gross_income", "tax", "other_deductions", "retirement_contribution"},
		{"2026-01-15", "50000", "10000", "2500", "5000"},
		{"", "", "", "", ""},
		{"2026-02-15", "51000", "10200", "2550", "5100"},
	})

	records, err := ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, records, 2) // blank row skipped
	assert.Equal(t, "2026-01", records[0].MonthKey())
	assert.InDelta(t, 51_000, records[1].GrossIncome, 1e-9)
}

func TestReadXLSXMissingHeader(t *testing.T) {
	path := writeTestXLSX(t, [][]string{
		{"foo", "bar"},
		{"1", "2"},
	})

	_, err := ReadXLSX(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no date column")
}

func TestReadFileDispatch(t *testing.T) {
	_, err := ReadFile(context.Background(), "records.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
